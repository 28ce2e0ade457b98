// Package linter applies best-practice rules to resolved OpenAPI documents
// and reports their findings as Warnings.
//
// Rules are plain values: a Definition names the category of object it
// applies to and a CheckFunc called once per such object. Definitions are
// held in an immutable Registry built once and shared by every run:
//
//	reg, err := linter.DefaultRegistry().Extend(myRule)
//	l, err := linter.New(reg, linter.WithWorkers(4))
//	warnings, err := l.Lint(ctx, resolved)
//
// Rules are independent and read-only, so they run concurrently; their
// output is returned in registration order. A rule that panics or returns an
// error yields a single RULE_FAILURE warning and does not affect other rules.
//
// Rules may also be declared in configuration as expr-lang assertions, see
// CustomRule.
package linter
