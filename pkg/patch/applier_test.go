package patch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// fixture lays out a target and companion files in a temp dir
type fixture struct {
	dir         string
	targetPath  string
	matchFile   string
	replaceFile string
}

func newFixture(t *testing.T, target, match, replace string) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:         dir,
		targetPath:  filepath.Join(dir, "target.txt"),
		matchFile:   filepath.Join(dir, "patch_match.txt"),
		replaceFile: filepath.Join(dir, "patch_replace.txt"),
	}
	require.NoError(t, os.WriteFile(f.targetPath, []byte(target), 0644))
	require.NoError(t, os.WriteFile(f.matchFile, []byte(match), 0644))
	require.NoError(t, os.WriteFile(f.replaceFile, []byte(replace), 0644))
	return f
}

func (f *fixture) applier(t *testing.T) *Applier {
	t.Helper()
	a, err := New(Options{
		TargetPath:  f.targetPath,
		MatchFile:   f.matchFile,
		ReplaceFile: f.replaceFile,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) targetBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(f.targetPath)
	require.NoError(t, err)
	return data
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantError string
	}{
		{
			name: "valid",
			opts: Options{TargetPath: "t", MatchFile: "m", ReplaceFile: "r"},
		},
		{
			name:      "missing_target",
			opts:      Options{MatchFile: "m", ReplaceFile: "r"},
			wantError: "target path is required",
		},
		{
			name:      "missing_match_file",
			opts:      Options{TargetPath: "t", ReplaceFile: "r"},
			wantError: "match file is required",
		},
		{
			name:      "missing_replace_file",
			opts:      Options{TargetPath: "t", MatchFile: "m"},
			wantError: "replace file is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.opts)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, a)
		})
	}
}

func TestApplier_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces_every_occurrence", func(t *testing.T) {
		f := newFixture(t, "foo baz foo", "foo", "bar")

		result, err := f.applier(t).Apply(ctx)

		require.NoError(t, err)
		assert.Equal(t, "bar baz bar", string(f.targetBytes(t)))
		assert.Equal(t, 2, result.ReplacementCount)
		assert.Equal(t, f.targetPath, result.TargetPath)
		assert.Equal(t, len("bar baz bar"), result.BytesWritten)
	})

	t.Run("strips_companion_whitespace_only", func(t *testing.T) {
		f := newFixture(t, "a foo\tbar b", "  foo\tbar\n\n", "\tqux\n")

		_, err := f.applier(t).Apply(ctx)

		require.NoError(t, err)
		assert.Equal(t, "a qux b", string(f.targetBytes(t)))
	})

	t.Run("empty_replacement_deletes", func(t *testing.T) {
		f := newFixture(t, "keep-drop-keep", "-drop", "\n")

		result, err := f.applier(t).Apply(ctx)

		require.NoError(t, err)
		assert.Equal(t, "keep-keep", string(f.targetBytes(t)))
		assert.Equal(t, 1, result.ReplacementCount)
	})

	t.Run("multiline_block_replacement", func(t *testing.T) {
		f := newFixture(t,
			"func old() {\n\treturn 1\n}\n",
			"func old() {\n\treturn 1\n}",
			"func new() {\n\treturn 2\n}")

		_, err := f.applier(t).Apply(ctx)

		require.NoError(t, err)
		assert.Equal(t, "func new() {\n\treturn 2\n}\n", string(f.targetBytes(t)))
	})

	t.Run("preserves_target_file_mode", func(t *testing.T) {
		f := newFixture(t, "foo", "foo", "bar")
		require.NoError(t, os.Chmod(f.targetPath, 0600))

		_, err := f.applier(t).Apply(ctx)

		require.NoError(t, err)
		info, err := os.Stat(f.targetPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestApplier_Apply_MatchNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "abc", "xyz", "replacement")
	before := f.targetBytes(t)

	_, err := f.applier(t).Apply(ctx)

	var notFound *MatchNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, f.targetPath, notFound.TargetPath)
	assert.Equal(t, "xyz...", notFound.Preview)
	assert.Contains(t, err.Error(), f.targetPath)

	// target untouched, byte for byte
	assert.Equal(t, before, f.targetBytes(t))
}

func TestApplier_Apply_MatchNotFoundPreviewTruncates(t *testing.T) {
	ctx := context.Background()
	longMatch := strings.Repeat("m", 60)
	f := newFixture(t, "abc", longMatch, "r")

	_, err := f.applier(t).Apply(ctx)

	var notFound *MatchNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, strings.Repeat("m", 50)+"...", notFound.Preview)
}

func TestApplier_Apply_CompanionMissing(t *testing.T) {
	ctx := context.Background()

	t.Run("replace_file_absent", func(t *testing.T) {
		f := newFixture(t, "abc", "abc", "ignored")
		require.NoError(t, os.Remove(f.replaceFile))
		before := f.targetBytes(t)

		_, err := f.applier(t).Apply(ctx)

		var missing *CompanionMissingError
		require.ErrorAs(t, err, &missing)
		assert.Contains(t, err.Error(), f.matchFile)
		assert.Contains(t, err.Error(), f.replaceFile)
		assert.Equal(t, before, f.targetBytes(t))
	})

	t.Run("both_absent", func(t *testing.T) {
		f := newFixture(t, "abc", "abc", "def")
		require.NoError(t, os.Remove(f.matchFile))
		require.NoError(t, os.Remove(f.replaceFile))

		_, err := f.applier(t).Apply(ctx)

		var missing *CompanionMissingError
		require.ErrorAs(t, err, &missing)
	})
}

func TestApplier_Apply_EmptyMatchText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "abc", "   \n\t", "replacement")
	before := f.targetBytes(t)

	_, err := f.applier(t).Apply(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "match text is required")
	assert.Equal(t, before, f.targetBytes(t))
}

func TestApplier_Apply_MissingTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "abc", "abc", "def")
	require.NoError(t, os.Remove(f.targetPath))

	_, err := f.applier(t).Apply(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading target file")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestApplier_Apply_SecondApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("fails_once_match_is_gone", func(t *testing.T) {
		f := newFixture(t, "foo baz", "foo", "bar")

		_, err := f.applier(t).Apply(ctx)
		require.NoError(t, err)

		_, err = f.applier(t).Apply(ctx)
		var notFound *MatchNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "bar baz", string(f.targetBytes(t)))
	})

	t.Run("succeeds_when_replacement_contains_match", func(t *testing.T) {
		f := newFixture(t, "foo baz", "foo", "foofoo")

		_, err := f.applier(t).Apply(ctx)
		require.NoError(t, err)
		assert.Equal(t, "foofoo baz", string(f.targetBytes(t)))

		result, err := f.applier(t).Apply(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.ReplacementCount)
		assert.Equal(t, "foofoofoofoo baz", string(f.targetBytes(t)))
	})
}
