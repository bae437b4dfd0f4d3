package text

import (
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// LiteralReplacer implements Replacer using exact string replacement
type LiteralReplacer struct{}

// NewLiteralReplacer creates a new LiteralReplacer
func NewLiteralReplacer() *LiteralReplacer {
	return &LiteralReplacer{}
}

// Contains implements Replacer.Contains
func (r *LiteralReplacer) Contains(content []byte, rule ReplacementRule) bool {
	return strings.Contains(string(content), rule.FromText)
}

// Replace implements Replacer.Replace. Occurrences are consumed left to
// right; scanning resumes after each replaced span on the original text, so
// occurrences introduced by the replacement itself are never re-matched.
func (r *LiteralReplacer) Replace(ctx context.Context, content []byte, rule ReplacementRule) (*ReplacementResult, error) {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	// Empty search text is a no-op, not an insertion point
	if rule.FromText == "" {
		return result, nil
	}

	original := string(content)
	modified := strings.ReplaceAll(original, rule.FromText, rule.ToText)

	result.ReplacementCount = strings.Count(original, rule.FromText)
	result.WasModified = modified != original
	result.ModifiedContent = []byte(modified)
	return result, nil
}

// ValidateRule implements Replacer.ValidateRule
func (r *LiteralReplacer) ValidateRule(rule ReplacementRule) error {
	if rule.FromText == "" {
		return errors.Errorf("match text is required")
	}
	return nil
}
