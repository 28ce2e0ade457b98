package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/erraggy/oaslint"
	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/internal/cliutil"
	"github.com/erraggy/oaslint/internal/config"
	"github.com/erraggy/oaslint/report"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	SchemaOnly    bool
	LintOnly      bool
	JSON          bool
	Format        string
	ConfigPath    string
	MaxRefDepth   int
	Strict        bool
	DisabledRules string
	NoColor       bool
	Quiet         bool
	Verbose       bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.SchemaOnly, "schema-only", false, "report only structural errors (skip lint rules)")
	fs.BoolVar(&flags.LintOnly, "lint-only", false, "report only lint warnings (skip structural validation)")
	fs.BoolVar(&flags.JSON, "json", false, "shorthand for --format json")
	fs.StringVar(&flags.Format, "format", report.FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.ConfigPath, "config", "", "configuration file (default: .oaslint.yaml in the working directory, if present)")
	fs.IntVar(&flags.MaxRefDepth, "max-ref-depth", 0, "maximum number of consecutive $ref hops (default from configuration, 64)")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when the report contains warnings")
	fs.StringVar(&flags.DisabledRules, "disable", "", "comma separated lint rule IDs to skip")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored text output")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only print the summary line")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only print the summary line")
	fs.BoolVar(&flags.Verbose, "v", false, "log pipeline diagnostics to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log pipeline diagnostics to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oaslint validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate an OpenAPI 3.x document and lint it against best-practice rules.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable sectioned report\n")
		Writef(fs.Output(), "  json            JSON report for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML report for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oaslint validate openapi.yaml\n")
		Writef(fs.Output(), "  oaslint validate --schema-only openapi.json\n")
		Writef(fs.Output(), "  oaslint validate --json openapi.yaml | jq '.valid'\n")
		Writef(fs.Output(), "  cat openapi.yaml | oaslint validate -q -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document is valid (warnings permitted unless --strict)\n")
		Writef(fs.Output(), "  1    Document is invalid, could not be parsed, or usage error\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command. It returns
// ErrValidationFailed after writing the report of a document that did not
// pass.
func HandleValidate(ctx context.Context, args []string, std Streams) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(std.Err)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if len(positional) != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin, got %d", len(positional))
	}
	specPath := positional[0]

	// Validate flags early to fail fast before loading anything
	format, err := outputFormat(flags)
	if err != nil {
		return err
	}
	mode, err := report.ParseMode(flags.SchemaOnly, flags.LintOnly)
	if err != nil {
		return err
	}

	settings, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(std.Err, flags.Verbose)
	logger.Debug("loaded configuration", "settings", settings.String())

	opts := append(settings.Options(), engine.WithMode(mode), engine.WithLogger(logger))
	if flags.MaxRefDepth != 0 {
		opts = append(opts, engine.WithMaxRefDepth(flags.MaxRefDepth))
	}
	if flags.Strict {
		opts = append(opts, engine.WithStrict(true))
	}
	if flags.DisabledRules != "" {
		opts = append(opts, engine.WithDisabledRules(splitIDs(flags.DisabledRules)...))
	}
	e, err := engine.New(opts...)
	if err != nil {
		return err
	}

	startTime := time.Now()
	var res *engine.Result
	if specPath == StdinFilePath {
		res, err = e.CheckReader(ctx, FormatSpecPath(specPath), std.In, document.FormatUnknown)
	} else {
		res, err = e.CheckFile(ctx, specPath)
	}
	if err != nil {
		return fmt.Errorf("validating %s: %w", FormatSpecPath(specPath), err)
	}
	totalTime := time.Since(startTime)

	if format == report.FormatText && !flags.Quiet {
		Writef(std.Out, "OpenAPI Validator\n")
		Writef(std.Out, "=================\n\n")
		Writef(std.Out, "oaslint version: %s\n", oaslint.Version())
		Writef(std.Out, "Specification: %s\n", FormatSpecPath(specPath))
		Writef(std.Out, "OAS Version: %s\n", res.Version)
		Writef(std.Out, "Mode: %s\n", res.Mode)
		Writef(std.Out, "References: %d\n", res.References)
		Writef(std.Out, "Total Time: %v\n\n", totalTime)
	}

	textOpts := report.TextOptions{
		Color:       cliutil.ColorEnabled(std.Out, flags.NoColor),
		SummaryOnly: flags.Quiet,
	}
	if err := report.Write(std.Out, res.Report, format, textOpts); err != nil {
		return err
	}

	if !res.Passed() {
		if format == report.FormatText && res.Report.Valid && !flags.Quiet {
			Writef(std.Out, "✗ Strict mode: %d warning(s) treated as failures\n", res.Report.WarningCount())
		}
		return ErrValidationFailed
	}
	return nil
}

// outputFormat reconciles --json with --format.
func outputFormat(flags *ValidateFlags) (string, error) {
	if err := report.ValidateFormat(flags.Format); err != nil {
		return "", err
	}
	if !flags.JSON {
		return flags.Format, nil
	}
	if flags.Format != report.FormatText && flags.Format != report.FormatJSON {
		return "", fmt.Errorf("--json cannot be combined with --format %s", flags.Format)
	}
	return report.FormatJSON, nil
}
