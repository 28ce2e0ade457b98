package commands

import (
	"errors"
	"flag"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/internal/config"
	"github.com/erraggy/oaslint/walker"
)

// RulesFlags contains flags for the rules command
type RulesFlags struct {
	ConfigPath string
	AppliesTo  string
}

// SetupRulesFlags creates and configures a FlagSet for the rules command.
func SetupRulesFlags() (*flag.FlagSet, *RulesFlags) {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	flags := &RulesFlags{}

	fs.StringVar(&flags.ConfigPath, "config", "", "configuration file (default: .oaslint.yaml in the working directory, if present)")
	fs.StringVar(&flags.AppliesTo, "applies-to", "", "only list rules for this object category (e.g. operation, schema)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oaslint rules [flags]\n\n")
		Writef(fs.Output(), "List the enabled lint rules, including custom rules from the configuration file.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleRules executes the rules command, printing enabled rules grouped by
// the category of object they apply to.
func HandleRules(args []string, std Streams) error {
	fs, flags := SetupRulesFlags()
	fs.SetOutput(std.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("rules command takes no arguments")
	}

	var only walker.Category
	if flags.AppliesTo != "" {
		c, ok := walker.ParseCategory(flags.AppliesTo)
		if !ok {
			return fmt.Errorf("unknown category %q", flags.AppliesTo)
		}
		only = c
	}

	settings, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	e, err := engine.New(settings.Options()...)
	if err != nil {
		return err
	}

	defs := e.Rules()
	width := 0
	for _, d := range defs {
		width = max(width, len(d.ID))
	}

	titleCaser := cases.Title(language.English, cases.NoLower)
	total := 0
	for _, c := range walker.Categories() {
		if only != "" && c != only {
			continue
		}
		var lines []string
		for _, d := range defs {
			if d.AppliesTo == c {
				lines = append(lines, fmt.Sprintf("  %-*s  %s\n", width, d.ID, d.Description))
			}
		}
		if len(lines) == 0 {
			continue
		}
		total += len(lines)
		Writef(std.Out, "%s (%d):\n", titleCaser.String(string(c)), len(lines))
		for _, l := range lines {
			Writef(std.Out, "%s", l)
		}
		Writef(std.Out, "\n")
	}
	Writef(std.Out, "%d rule(s) enabled\n", total)
	return nil
}
