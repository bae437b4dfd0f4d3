package config

import (
	"gitlab.com/tozd/go/errors"
)

// Default companion file names, relative to the working directory.
const (
	DefaultMatchFile   = "patch_match.txt"
	DefaultReplaceFile = "patch_replace.txt"

	// DefaultConfigFile is tried for both YAML and HCL content
	DefaultConfigFile = ".patchrc"
)

// 📚 Config names the companion files that supply the match and
// replacement text
type Config struct {
	MatchFile   string `json:"match_file,omitempty" yaml:"match_file,omitempty" hcl:"match_file,optional"`
	ReplaceFile string `json:"replace_file,omitempty" yaml:"replace_file,omitempty" hcl:"replace_file,optional"`
}

// 🎯 Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		MatchFile:   DefaultMatchFile,
		ReplaceFile: DefaultReplaceFile,
	}
}

// 🔍 Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.MatchFile == "" {
		return errors.Errorf("match_file is required")
	}
	if c.ReplaceFile == "" {
		return errors.Errorf("replace_file is required")
	}
	if c.MatchFile == c.ReplaceFile {
		return errors.Errorf("match_file and replace_file must name different files")
	}
	return nil
}
