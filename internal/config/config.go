// Package config loads the extended list settings from an optional YAML
// file, the environment, and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the settings file searched for from the working directory up.
const FileName = ".pandext.yaml"

// EnvPrefix prefixes environment overrides, e.g. PANDEXT_STRICT_PANDOC_MODE.
const EnvPrefix = "PANDEXT"

// Settings are the recognized options.
type Settings struct {
	// StrictPandocMode enforces blank lines before list blocks and two
	// spaces after capital letter markers; malformed blocks stay plain text.
	StrictPandocMode bool `mapstructure:"strict_pandoc_mode"`

	// MoreExtendedSyntax enables custom label lists and references.
	MoreExtendedSyntax bool `mapstructure:"more_extended_syntax"`

	// AutoRenumberLists lets editing commands renumber fancy lists.
	AutoRenumberLists bool `mapstructure:"auto_renumber_lists"`

	// Regions selects how code and math regions are detected: RegionsText
	// scans the source lines, RegionsTree walks a CommonMark syntax tree.
	Regions string `mapstructure:"regions"`
}

// Region detection strategies.
const (
	RegionsText = "text"
	RegionsTree = "tree"
)

// ErrInvalid is returned by Load for a setting with an unrecognized value.
var ErrInvalid = errors.New("invalid setting")

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		StrictPandocMode:   false,
		MoreExtendedSyntax: true,
		AutoRenumberLists:  true,
		Regions:            RegionsText,
	}
}

// Flags maps settings keys to the command line flag names bound by Load.
var Flags = map[string]string{
	"strict_pandoc_mode":   "strict",
	"more_extended_syntax": "extended",
	"auto_renumber_lists":  "renumber",
	"regions":              "regions",
}

// Load reads settings from path, or from a FileName found by FindFile when
// path is empty; a missing discovered file leaves the defaults in place.
// Environment variables override the file, and any changed flag in flags
// named by Flags overrides both.
func Load(path string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("strict_pandoc_mode", def.StrictPandocMode)
	v.SetDefault("more_extended_syntax", def.MoreExtendedSyntax)
	v.SetDefault("regions", def.Regions)
	v.SetDefault("auto_renumber_lists", def.AutoRenumberLists)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		if path, err = FindFile(wd, FileName); err != nil {
			return Settings{}, fmt.Errorf("failed to find %v: %w", FileName, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range Flags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("failed to bind --%v: %w", name, err)
				}
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	switch settings.Regions {
	case RegionsText, RegionsTree:
	default:
		return Settings{}, fmt.Errorf("%w: regions %q, want %q or %q",
			ErrInvalid, settings.Regions, RegionsText, RegionsTree)
	}
	return settings, nil
}

// FindFile looks for a named file in dir and then in every parent directory,
// returning the absolute path of the first one found, or "" if there is none.
func FindFile(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
