package patch

import (
	"fmt"
)

// MatchPreviewLen is how many characters of the match text are echoed in a
// MatchNotFoundError as a debugging aid
const MatchPreviewLen = 50

// 🚫 CompanionMissingError reports that one or both companion files are
// absent from disk. It is raised before any target file I/O happens.
type CompanionMissingError struct {
	MatchFile   string
	ReplaceFile string
}

func (e *CompanionMissingError) Error() string {
	return fmt.Sprintf("%s and %s must exist", e.MatchFile, e.ReplaceFile)
}

// 🚫 MatchNotFoundError reports that the match text does not occur in the
// target content. The target has been read but not written.
type MatchNotFoundError struct {
	TargetPath string
	Preview    string
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("match text not found in %s", e.TargetPath)
}

// previewOf truncates the match text to MatchPreviewLen characters. The
// trailing ellipsis is always appended, matching the diagnostic format
// users already grep for.
func previewOf(matchText string) string {
	runes := []rune(matchText)
	if len(runes) > MatchPreviewLen {
		runes = runes[:MatchPreviewLen]
	}
	return string(runes) + "..."
}
