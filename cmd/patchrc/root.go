package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/BadFoxAI/patchrc/pkg/config"
	"github.com/BadFoxAI/patchrc/pkg/log"
	"github.com/BadFoxAI/patchrc/pkg/patch"
)

var (
	// Flags
	configFile  string
	matchFile   string
	replaceFile string
	debug       bool
)

// newRootCmd creates the root command. The console logger is taken from
// the command context (see log.NewContext).
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patchrc <target_file>",
		Short: "Apply a literal find-and-replace patch to a file",
		Long: `patchrc replaces every occurrence of the text held in a match file with
the text held in a replacement file, inside a single target file.

By default the companion files are patch_match.txt and patch_replace.txt
in the working directory. Leading and trailing whitespace in both is
ignored; the target file is rewritten in place.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Usage output is only helpful for argument errors
			cmd.SilenceUsage = true

			ctx := cmd.Context()
			console := log.FromContext(ctx)
			ctx = zerolog.Ctx(ctx).With().Str("command", "patch").Logger().WithContext(ctx)

			return runPatch(ctx, console, args[0])
		},
	}
	addRootFlags(cmd)
	return cmd
}

// addRootFlags adds flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultConfigFile, "config file path")
	cmd.Flags().StringVar(&matchFile, "match-file", "", "match companion file (default "+config.DefaultMatchFile+")")
	cmd.Flags().StringVar(&replaceFile, "replace-file", "", "replace companion file (default "+config.DefaultReplaceFile+")")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog and attaches it to the context
func setupLogging(ctx context.Context) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}

// runPatch loads the configuration, applies the patch and reports success
func runPatch(ctx context.Context, console *log.Logger, targetPath string) error {
	if debug {
		console.Header("applying patch")
	}

	// An explicitly named config file that is absent deserves a warning;
	// the default name is allowed to be missing silently.
	if configFile != config.DefaultConfigFile {
		if _, statErr := os.Stat(configFile); os.IsNotExist(statErr) {
			console.Warningf("config file %s not found, using defaults", configFile)
		}
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	// Flag overrides win over config file values
	if matchFile != "" {
		cfg.MatchFile = matchFile
	}
	if replaceFile != "" {
		cfg.ReplaceFile = replaceFile
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	applier, err := patch.New(patch.Options{
		TargetPath:  targetPath,
		MatchFile:   cfg.MatchFile,
		ReplaceFile: cfg.ReplaceFile,
	})
	if err != nil {
		return errors.Errorf("creating applier: %w", err)
	}

	result, err := applier.Apply(ctx)
	if err != nil {
		return err
	}

	if debug {
		console.LogPatchOperation(ctx, log.PatchOperation{
			Target:       result.TargetPath,
			Replacements: result.ReplacementCount,
			Status:       "patched",
		})
	}
	console.Successf("Successfully patched %s", result.TargetPath)
	return nil
}
