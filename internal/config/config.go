// Package config loads oaslint settings from an optional .oaslint.yaml file
// and OASLINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/linter"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/resolver"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "OASLINT"

// FileName is the configuration file looked up in the working directory.
const FileName = ".oaslint"

// Keys of the configuration file. The environment variable of a key is the
// prefix plus the key upper-cased with dots replaced by underscores, e.g.
// OASLINT_RULES_DISABLED.
const (
	KeyMaxRefDepth     = "max_ref_depth"
	KeyWorkers         = "workers"
	KeyMetaSchemaCheck = "meta_schema_check"
	KeyStrict          = "strict"
	KeyRulesDisabled   = "rules.disabled"
	KeyRulesCustom     = "rules.custom"
)

// Settings are the values read from the file and the environment.
type Settings struct {
	// Source is the file the settings were read from ("" if none)
	Source          string
	MaxRefDepth     int
	Workers         int
	MetaSchemaCheck bool
	Strict          bool
	DisabledRules   []string
	CustomRules     []linter.CustomRule
}

// Load reads settings. An explicit path must exist; with an empty path
// .oaslint.yaml is read from the working directory when present. Environment
// variables override the file.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyMaxRefDepth, resolver.DefaultMaxDepth)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyMetaSchemaCheck, false)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyRulesDisabled, []string{})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "failed to read configuration", Cause: err}
		}
	}

	s := &Settings{
		Source:          v.ConfigFileUsed(),
		MaxRefDepth:     v.GetInt(KeyMaxRefDepth),
		Workers:         v.GetInt(KeyWorkers),
		MetaSchemaCheck: v.GetBool(KeyMetaSchemaCheck),
		Strict:          v.GetBool(KeyStrict),
		DisabledRules:   splitList(v.GetStringSlice(KeyRulesDisabled)),
	}
	if err := v.UnmarshalKey(KeyRulesCustom, &s.CustomRules); err != nil {
		return nil, &oaserrors.ConfigError{Option: KeyRulesCustom, Message: "invalid custom rules", Cause: err}
	}
	if s.MaxRefDepth < 1 {
		return nil, &oaserrors.ConfigError{Option: KeyMaxRefDepth, Value: s.MaxRefDepth, Message: "must be at least 1"}
	}
	if s.Workers < 0 {
		return nil, &oaserrors.ConfigError{Option: KeyWorkers, Value: s.Workers, Message: "must not be negative"}
	}
	return s, nil
}

// splitList flattens comma separated entries, as given in environment
// variables, and drops blanks.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Options converts the settings into engine options.
func (s *Settings) Options() []engine.Option {
	opts := []engine.Option{
		engine.WithMaxRefDepth(s.MaxRefDepth),
		engine.WithMetaSchemaCheck(s.MetaSchemaCheck),
		engine.WithStrict(s.Strict),
		engine.WithDisabledRules(s.DisabledRules...),
		engine.WithCustomRules(s.CustomRules...),
	}
	if s.Workers > 0 {
		opts = append(opts, engine.WithWorkers(s.Workers))
	}
	return opts
}

// String summarizes the settings for diagnostics.
func (s *Settings) String() string {
	src := s.Source
	if src == "" {
		src = "<defaults>"
	}
	return fmt.Sprintf("%s (max_ref_depth=%d workers=%d disabled=%d custom=%d)",
		src, s.MaxRefDepth, s.Workers, len(s.DisabledRules), len(s.CustomRules))
}
