package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/BadFoxAI/patchrc/pkg/patch"
)

// reportFailure prints the user-facing diagnostic for a failed invocation.
// Containment failures get a second line echoing the truncated search text.
func reportFailure(ctx context.Context, err error) {
	zerolog.Ctx(ctx).Error().Err(err).Msg("patch failed")

	var notFound *patch.MatchNotFoundError
	var missing *patch.CompanionMissingError
	switch {
	case errors.As(err, &notFound):
		pterm.Error.Printfln("Match text not found in %s", notFound.TargetPath)
		pterm.Error.Printfln("Searching for: %s", notFound.Preview)
	case errors.As(err, &missing):
		pterm.Error.Printfln("%s and %s must exist.", missing.MatchFile, missing.ReplaceFile)
	default:
		pterm.Error.Println(err.Error())
	}
}
