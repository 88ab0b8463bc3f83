package domain

import "strings"

// Rules is the immutable classification table shared by every request.
type Rules struct {
	keywords []string
	replies  map[Category]string
}

func DefaultKeywords() []string {
	return []string{"solicito", "atualização", "erro", "problema", "dúvida", "pedido"}
}

func DefaultReplies() map[Category]string {
	return map[Category]string{
		CategoryProductive:   defaultReplyProduct,
		CategoryUnproductive: defaultReplyIdle,
	}
}

func DefaultRules() Rules {
	return NewRules(DefaultKeywords(), DefaultReplies())
}

// NewRules copies its inputs. Missing replies are filled from the defaults.
func NewRules(keywords []string, replies map[Category]string) Rules {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kw = append(kw, k)
		}
	}

	table := DefaultReplies()
	for category, reply := range replies {
		if category.Valid() && strings.TrimSpace(reply) != "" {
			table[category] = reply
		}
	}
	return Rules{keywords: kw, replies: table}
}

func (r Rules) Keywords() []string {
	out := make([]string, len(r.keywords))
	copy(out, r.keywords)
	return out
}

// Reply returns the canned reply for category, falling back to the unproductive
// reply for unknown labels.
func (r Rules) Reply(category Category) string {
	if reply, ok := r.replies[category]; ok {
		return reply
	}
	if reply, ok := r.replies[CategoryUnproductive]; ok {
		return reply
	}
	return defaultReplyIdle
}

// Resolve maps an arbitrary label onto a valid Result.
func (r Rules) Resolve(label string) Result {
	category := Category(strings.TrimSpace(label))
	if !category.Valid() {
		category = CategoryUnproductive
	}
	return Result{Category: category, SuggestedReply: r.Reply(category)}
}
