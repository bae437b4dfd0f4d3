package patch

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/BadFoxAI/patchrc/pkg/text"
)

// defaultFileMode is used when the target's own mode cannot be preserved
const defaultFileMode fs.FileMode = 0644

// 🔧 Options contains configuration for the applier
type Options struct {
	// TargetPath is the file to patch
	TargetPath string

	// MatchFile holds the text to search for
	MatchFile string

	// ReplaceFile holds the text to substitute
	ReplaceFile string

	// Replacer performs the substitution, defaults to text.LiteralReplacer
	Replacer text.Replacer
}

// 📦 Result describes a successfully applied patch
type Result struct {
	// TargetPath is the file that was patched
	TargetPath string

	// ReplacementCount is the number of occurrences replaced
	ReplacementCount int

	// BytesWritten is the size of the rewritten target
	BytesWritten int
}

// 🎮 Applier applies one patch to one target file
type Applier struct {
	opts     Options
	replacer text.Replacer
}

// 🏭 New creates a new applier with the given options
func New(opts Options) (*Applier, error) {
	if opts.TargetPath == "" {
		return nil, errors.Errorf("target path is required")
	}
	if opts.MatchFile == "" {
		return nil, errors.Errorf("match file is required")
	}
	if opts.ReplaceFile == "" {
		return nil, errors.Errorf("replace file is required")
	}
	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewLiteralReplacer()
	}
	return &Applier{
		opts:     opts,
		replacer: replacer,
	}, nil
}

// Apply runs the patch sequence: companion existence check, rule loading,
// containment check, substitution, write-back. On any error the target
// file's on-disk bytes are untouched.
func (a *Applier) Apply(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("target", a.opts.TargetPath).
		Str("match_file", a.opts.MatchFile).
		Str("replace_file", a.opts.ReplaceFile).
		Msg("applying patch")

	if err := a.checkCompanions(); err != nil {
		return nil, err
	}

	rule, err := a.loadRule()
	if err != nil {
		return nil, err
	}
	if err := a.replacer.ValidateRule(rule); err != nil {
		return nil, errors.Errorf("validating replacement rule: %w", err)
	}

	mode := defaultFileMode
	if info, err := os.Stat(a.opts.TargetPath); err == nil {
		mode = info.Mode().Perm()
	}

	content, err := os.ReadFile(a.opts.TargetPath)
	if err != nil {
		return nil, errors.Errorf("reading target file: %w", err)
	}

	if !a.replacer.Contains(content, rule) {
		return nil, &MatchNotFoundError{
			TargetPath: a.opts.TargetPath,
			Preview:    previewOf(rule.FromText),
		}
	}

	result, err := a.replacer.Replace(ctx, content, rule)
	if err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	if err := os.WriteFile(a.opts.TargetPath, result.ModifiedContent, mode); err != nil {
		return nil, errors.Errorf("writing target file: %w", err)
	}

	logger.Debug().
		Str("target", a.opts.TargetPath).
		Int("replacements", result.ReplacementCount).
		Msg("patch applied")

	return &Result{
		TargetPath:       a.opts.TargetPath,
		ReplacementCount: result.ReplacementCount,
		BytesWritten:     len(result.ModifiedContent),
	}, nil
}

// checkCompanions verifies both companion files exist before any target I/O
func (a *Applier) checkCompanions() error {
	missing := false
	for _, path := range []string{a.opts.MatchFile, a.opts.ReplaceFile} {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				missing = true
				continue
			}
			return errors.Errorf("checking companion file %s: %w", path, err)
		}
	}
	if missing {
		return &CompanionMissingError{
			MatchFile:   a.opts.MatchFile,
			ReplaceFile: a.opts.ReplaceFile,
		}
	}
	return nil
}

// loadRule reads both companion files. Leading and trailing whitespace is
// stripped; embedded whitespace is preserved exactly.
func (a *Applier) loadRule() (text.ReplacementRule, error) {
	matchData, err := os.ReadFile(a.opts.MatchFile)
	if err != nil {
		return text.ReplacementRule{}, errors.Errorf("reading match file: %w", err)
	}
	replaceData, err := os.ReadFile(a.opts.ReplaceFile)
	if err != nil {
		return text.ReplacementRule{}, errors.Errorf("reading replace file: %w", err)
	}
	return text.ReplacementRule{
		FromText: strings.TrimSpace(string(matchData)),
		ToText:   strings.TrimSpace(string(replaceData)),
	}, nil
}
