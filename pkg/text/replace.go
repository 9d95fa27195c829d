package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Result describes the outcome of applying a set of rules to one buffer of
// content.
type Result struct {
	OriginalContent  []byte // content as read
	ModifiedContent  []byte // content after all rules applied
	ReplacementCount int    // total occurrences replaced across all rules
	WasModified      bool   // whether any rule matched
}

// Replacer applies literal substitution rules to content.
type Replacer struct{}

// NewReplacer creates a new Replacer
func NewReplacer() *Replacer {
	return &Replacer{}
}

// Replace reads all content and applies each rule in order. Matches are
// scanned left to right and do not overlap; text produced by one rule is
// visible to later rules but a rule never re-matches its own output within
// a single application.
func (r *Replacer) Replace(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		if rule.From == "" {
			continue
		}

		newContent := strings.ReplaceAll(currentContent, rule.From, rule.To)

		if newContent != currentContent {
			result.WasModified = true
			result.ReplacementCount += strings.Count(currentContent, rule.From)
		}

		currentContent = newContent
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules checks that every rule has a non-empty search text.
func ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.From == "" {
			return errors.Errorf("rule %d: from text is required", i)
		}
	}
	return nil
}
