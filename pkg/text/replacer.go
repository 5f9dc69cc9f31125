package text

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEncoding is returned when content is not valid UTF-8
var ErrInvalidEncoding = errors.Base("content is not valid UTF-8")

// ReplacementRule is a literal search/replace pair
type ReplacementRule struct {
	FromText string // Literal to search for
	ToText   string // Literal to put in its place
}

// ReplacementResult holds the outcome of applying a rule set to some content
type ReplacementResult struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int
	WasModified      bool
}

// TextReplacer applies replacement rules to content
type TextReplacer interface {
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)
	ValidateRules(rules []ReplacementRule) error
}

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText applies every rule in order to the whole content. Each rule
// replaces all non-overlapping occurrences and sees the output of the rules
// before it.
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if !utf8.Valid(originalContent) {
		return nil, errors.WithStack(ErrInvalidEncoding)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		// strings.Count on an empty literal counts rune boundaries
		if rule.FromText == "" {
			continue
		}

		count := strings.Count(currentContent, rule.FromText)
		if count == 0 {
			continue
		}

		currentContent = strings.ReplaceAll(currentContent, rule.FromText, rule.ToText)
		result.ReplacementCount += count
	}

	result.ModifiedContent = []byte(currentContent)
	result.WasModified = currentContent != string(originalContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
	}
	return nil
}
