package keyword

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

type rulesFile struct {
	Keywords []string          `yaml:"keywords"`
	Replies  map[string]string `yaml:"replies"`
}

// LoadRules reads keyword and reply overrides from a YAML file. An empty path
// yields the built-in rules. Keys under replies must be category labels.
func LoadRules(path string) (domain.Rules, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultRules(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("read classifier rules: %w", err)
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (domain.Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Rules{}, fmt.Errorf("parse classifier rules: %w", err)
	}

	keywords := file.Keywords
	if len(keywords) == 0 {
		keywords = domain.DefaultKeywords()
	}

	replies := make(map[domain.Category]string, len(file.Replies))
	for label, reply := range file.Replies {
		category := domain.Category(strings.TrimSpace(label))
		if !category.Valid() {
			return domain.Rules{}, fmt.Errorf("parse classifier rules: unknown category %q", label)
		}
		replies[category] = reply
	}
	return domain.NewRules(keywords, replies), nil
}
