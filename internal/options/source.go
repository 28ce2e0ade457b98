// Package options holds helpers shared by the functional options of several
// packages.
package options

import (
	"strings"

	"github.com/erraggy/oaslint/oaserrors"
)

// Source is an input option and whether a caller set it.
type Source struct {
	Option string
	Set    bool
}

// SingleSource returns the option name of the only set source. Zero or
// several set sources are a *oaserrors.ConfigError for option "input".
func SingleSource(sources ...Source) (string, error) {
	var set, all []string
	for _, s := range sources {
		all = append(all, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return set[0], nil
	case 0:
		return "", &oaserrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + strings.Join(all, ", ") + ")",
		}
	default:
		return "", &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: "must specify exactly one input source",
		}
	}
}
