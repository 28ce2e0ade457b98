package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/internal/logging"
	"github.com/erraggy/oaslint/linter"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/report"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/validator"
)

// Engine runs the load, resolve, validate, lint and aggregate pipeline.
// An Engine holds only configuration and is safe for concurrent use; every
// call builds its own document tree.
type Engine struct {
	resolver     *resolver.Resolver
	validator    *validator.Validator
	linter       *linter.Linter
	mode         report.Mode
	strict       bool
	maxInputSize int64
	logger       Logger
}

// Result is the outcome of one run.
type Result struct {
	// RunID identifies the run in logs
	RunID string
	// Report holds the errors and warnings, filtered by Mode
	Report *report.Report
	// SourcePath is the file path or source name of the document
	SourcePath string
	// Version is the declared openapi version ("" if absent)
	Version string
	// Mode is the mode the report was filtered with
	Mode report.Mode
	// Strict is set when warnings fail the run
	Strict bool
	// References is the number of $ref sites in the document
	References int
	// Duration is the time spent after loading
	Duration time.Duration
}

// Passed reports whether the run succeeded: the report is valid and, in
// strict mode, has no warnings.
func (r *Result) Passed() bool {
	if !r.Report.Valid {
		return false
	}
	return !r.Strict || r.Report.WarningCount() == 0
}

// New creates an Engine. Input source options are ignored.
func New(opts ...Option) (*Engine, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: invalid options: %w", err)
	}
	return fromConfig(cfg)
}

func fromConfig(cfg *Config) (*Engine, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = linter.DefaultRegistry()
	}
	if len(cfg.CustomRules) > 0 {
		var err error
		if reg, err = linter.ExtendWithCustom(reg, cfg.CustomRules...); err != nil {
			return nil, fmt.Errorf("engine: invalid options: %w", err)
		}
	}

	lintOpts := []linter.Option{
		linter.WithDisabledRules(cfg.DisabledRules...),
		linter.WithLogger(cfg.Logger),
	}
	if cfg.Workers > 0 {
		lintOpts = append(lintOpts, linter.WithWorkers(cfg.Workers))
	}
	l, err := linter.New(reg, lintOpts...)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	v, err := validator.New(
		validator.WithMetaSchemaCheck(cfg.MetaSchemaCheck),
		validator.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return &Engine{
		resolver: resolver.New(
			resolver.WithMaxDepth(cfg.MaxRefDepth),
			resolver.WithLogger(cfg.Logger),
		),
		validator:    v,
		linter:       l,
		mode:         cfg.Mode,
		strict:       cfg.Strict,
		maxInputSize: cfg.MaxInputSize,
		logger:       cfg.Logger,
	}, nil
}

// Mode returns the configured mode.
func (e *Engine) Mode() report.Mode { return e.mode }

// Rules returns the enabled lint rules in registration order.
func (e *Engine) Rules() []linter.Definition { return e.linter.Rules() }

// CheckFile loads and checks the document at path. A document that cannot
// be parsed is returned as an error wrapping *oaserrors.ParseError and no
// report is produced.
func (e *Engine) CheckFile(ctx context.Context, path string) (*Result, error) {
	doc, err := document.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return e.Check(ctx, doc)
}

// CheckBytes loads and checks data. An empty format is detected from the
// content.
func (e *Engine) CheckBytes(ctx context.Context, name string, data []byte, format document.Format) (*Result, error) {
	doc, err := document.LoadNamed(name, data, format)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return e.Check(ctx, doc)
}

// CheckReader reads at most the configured input size from r and checks it.
func (e *Engine) CheckReader(ctx context.Context, name string, r io.Reader, format document.Format) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("engine: reading %s: %w", name, err)
	}
	if int64(len(data)) > e.maxInputSize {
		return nil, fmt.Errorf("engine: %w", &oaserrors.ResourceLimitError{
			ResourceType: "input_size",
			Limit:        e.maxInputSize,
			Message:      "document is too large",
		})
	}
	return e.CheckBytes(ctx, name, data, format)
}

// Check resolves, validates and lints a loaded document. Validation and
// linting run concurrently over the same immutable resolved tree. The error
// is non-nil only if ctx is cancelled.
func (e *Engine) Check(ctx context.Context, doc *document.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("engine: nil document")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	start := time.Now()
	runID := uuid.NewString()
	log := e.logger.With("run_id", runID)

	rd := e.resolver.Resolve(doc)
	logging.Stage(log, "resolve", start, "references", len(rd.References), "faults", len(rd.Issues))

	var errs, warnings []issues.Issue
	g, gctx := errgroup.WithContext(ctx)
	if e.mode.RunsValidator() {
		g.Go(func() error {
			t0 := time.Now()
			found, err := e.validator.Validate(gctx, rd)
			errs = found
			logging.Stage(log, "validate", t0, "errors", len(found))
			return err
		})
	}
	if e.mode.RunsLinter() {
		g.Go(func() error {
			t0 := time.Now()
			found, err := e.linter.Lint(gctx, rd)
			warnings = found
			logging.Stage(log, "lint", t0, "warnings", len(found))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	all := make([]issues.Issue, 0, len(rd.Issues)+len(errs))
	all = append(all, rd.Issues...)
	all = append(all, errs...)

	res := &Result{
		RunID:      runID,
		Report:     report.Aggregate(all, warnings).Filter(e.mode),
		SourcePath: doc.SourcePath,
		Version:    rd.Version,
		Mode:       e.mode,
		Strict:     e.strict,
		References: len(rd.References),
		Duration:   time.Since(start),
	}
	log.Info("checked document",
		"source", res.SourcePath,
		"version", res.Version,
		"mode", e.mode.String(),
		"errors", res.Report.ErrorCount(),
		"warnings", res.Report.WarningCount(),
		"duration", res.Duration)
	return res, nil
}

// Run checks one document configured entirely through options:
//
//	res, err := engine.Run(ctx,
//	    engine.WithFilePath("openapi.yaml"),
//	    engine.WithMode(report.ModeSchemaOnly),
//	)
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: invalid options: %w", err)
	}
	e, err := fromConfig(cfg)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.filePath != nil:
		if cfg.format != "" {
			data, err := readFile(*cfg.filePath)
			if err != nil {
				return nil, err
			}
			return e.CheckBytes(ctx, *cfg.filePath, data, cfg.format)
		}
		return e.CheckFile(ctx, *cfg.filePath)
	case cfg.data != nil:
		return e.CheckBytes(ctx, cfg.sourceName, cfg.data, cfg.format)
	default:
		return e.CheckReader(ctx, cfg.sourceName, cfg.reader, cfg.format)
	}
}
