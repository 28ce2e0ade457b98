package linter

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/internal/logging"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

// Linter runs the enabled rules of a Registry over resolved documents.
// A Linter holds only configuration and is safe for concurrent use.
type Linter struct {
	rules   []Definition
	workers int
	logger  logging.Logger
}

// New creates a Linter for reg. A nil registry selects DefaultRegistry.
func New(reg *Registry, opts ...Option) (*Linter, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("linter: invalid options: %w", err)
	}
	if reg == nil {
		reg = DefaultRegistry()
	}

	disabled := make(map[string]bool, len(cfg.disabled))
	for _, id := range cfg.disabled {
		if _, ok := reg.Lookup(id); !ok {
			return nil, fmt.Errorf("linter: invalid options: %w",
				&oaserrors.ConfigError{Option: "disabled_rules", Value: id, Message: "unknown rule"})
		}
		disabled[id] = true
	}

	l := &Linter{workers: cfg.workers, logger: cfg.logger}
	for _, d := range reg.Rules() {
		if !disabled[d.ID] {
			l.rules = append(l.rules, d)
		}
	}
	return l, nil
}

// Rules returns the enabled rules in registration order.
func (l *Linter) Rules() []Definition {
	out := make([]Definition, len(l.rules))
	copy(out, l.rules)
	return out
}

// Lint applies every enabled rule to doc and returns the warnings in rule
// registration order. Rules run concurrently on a bounded pool; a rule that
// fails is reduced to one RULE_FAILURE warning and the others are unaffected.
// The error is non-nil only if ctx is cancelled.
func (l *Linter) Lint(ctx context.Context, doc *resolver.Document) ([]issues.Issue, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("linter: nil document")
	}

	targets, err := l.collect(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("linter: %w", err)
	}

	results := make([][]issues.Issue, len(l.rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, def := range l.rules {
		g.Go(func() error {
			found, err := l.run(gctx, def, targets[def.AppliesTo])
			results[i] = found
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("linter: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linter: %w", err)
	}

	var out []issues.Issue
	for _, found := range results {
		out = append(out, found...)
	}
	l.logger.Debug("linted document", "rules", len(l.rules), "warnings", len(out))
	return out, nil
}

// collect walks doc once and groups the objects of every category some
// enabled rule applies to.
func (l *Linter) collect(ctx context.Context, doc *resolver.Document) (map[walker.Category][]Target, error) {
	targets := make(map[walker.Category][]Target)
	var opts []walker.Option
	for _, d := range l.rules {
		c := d.AppliesTo
		if _, seen := targets[c]; seen {
			continue
		}
		targets[c] = nil
		opts = append(opts, walker.WithHandler(c, func(wc *walker.WalkContext) walker.Action {
			targets[c] = append(targets[c], targetOf(wc))
			return walker.Continue
		}))
	}
	if err := walker.Walk(ctx, doc, opts...); err != nil {
		return nil, err
	}
	return targets, nil
}

// run applies def to each target in order.
func (l *Linter) run(ctx context.Context, def Definition, targets []Target) ([]issues.Issue, error) {
	var out []issues.Issue
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := check(def, t)
		if err != nil {
			l.logger.Warn("lint rule failed", "rule", def.ID, "path", t.Node.Path().String(), "error", err)
			failure := issues.NewWarning(CodeRuleFailure, t.Node.Origin(), "%s", err.Error())
			return []issues.Issue{failure.WithRule(def.ID)}, nil
		}
		for _, iss := range found {
			out = append(out, iss.WithRule(def.ID))
		}
	}
	return out, nil
}

// check calls the rule, converting an error or a panic into a RuleError.
func check(def Definition, t Target) (found []issues.Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = &oaserrors.RuleError{RuleID: def.ID, Panicked: true, Cause: fmt.Errorf("%v", r)}
		}
	}()
	found, err = def.Check(t)
	if err != nil {
		return nil, &oaserrors.RuleError{RuleID: def.ID, Cause: err}
	}
	return found, nil
}
