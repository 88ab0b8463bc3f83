package keyword

import (
	"context"
	"fmt"
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

// Classifier marks text as productive when it contains any configured keyword,
// case-insensitively. It is safe for concurrent use.
type Classifier struct {
	rules   domain.Rules
	matcher *goahocorasick.Machine
}

func New(rules domain.Rules) (*Classifier, error) {
	patterns := buildPatterns(rules.Keywords())
	if len(patterns) == 0 {
		return &Classifier{rules: rules}, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}
	return &Classifier{rules: rules, matcher: m}, nil
}

func (c *Classifier) Classify(_ context.Context, text string) domain.Result {
	return c.Match(text)
}

// Match is the context-free form of Classify.
func (c *Classifier) Match(text string) domain.Result {
	category := domain.CategoryUnproductive
	if c.containsKeyword(text) {
		category = domain.CategoryProductive
	}
	return domain.Result{Category: category, SuggestedReply: c.rules.Reply(category)}
}

func (c *Classifier) containsKeyword(text string) bool {
	if c.matcher == nil || text == "" {
		return false
	}
	hits := c.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), true)
	return len(hits) > 0
}

// buildPatterns lower-cases, de-duplicates and sorts keywords for the automaton.
func buildPatterns(keywords []string) [][]rune {
	lowered := lo.Uniq(lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = strings.ToLower(strings.TrimSpace(k))
		return k, k != ""
	}))
	sort.Strings(lowered)

	return lo.Map(lowered, func(k string, _ int) []rune {
		return []rune(k)
	})
}
