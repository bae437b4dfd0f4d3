package text

import (
	"context"
)

// ReplacementRule defines a single literal text replacement
type ReplacementRule struct {
	// FromText is the exact text to search for
	FromText string

	// ToText is the replacement text, may be empty (deletion)
	ToText string
}

// ReplacementResult contains the results of a replacement pass
type ReplacementResult struct {
	// WasModified indicates if the content changed
	WasModified bool

	// ReplacementCount is the number of occurrences replaced
	ReplacementCount int

	// OriginalContent is the content before the pass
	OriginalContent []byte

	// ModifiedContent is the content after the pass
	ModifiedContent []byte
}

// Replacer defines the interface for literal text replacement
type Replacer interface {
	// Contains reports whether the rule's search text occurs in content
	Contains(content []byte, rule ReplacementRule) bool

	// Replace substitutes every non-overlapping occurrence of the rule's
	// search text in a single left-to-right pass
	Replace(ctx context.Context, content []byte, rule ReplacementRule) (*ReplacementResult, error)

	// ValidateRule checks that the rule is usable
	ValidateRule(rule ReplacementRule) error
}
