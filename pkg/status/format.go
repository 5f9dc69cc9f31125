package status

import (
	"fmt"
)

// FileFormatter formats status messages
type FileFormatter interface {
	// FormatFileOperation formats the outcome for one file
	FormatFileOperation(info FileInfo) string
}

type DefaultFileFormatter struct{}

func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusUpdated:
		return fmt.Sprintf("📝 Updated %s [%d]", info.Path, info.Replacements)
	case StatusPending:
		return fmt.Sprintf("⏳ Pending %s [%d]", info.Path, info.Replacements)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}
