// Package oaslint validates OpenAPI 3.x documents and lints them against a set of
// best-practice rules, producing a single report that separates fatal errors
// from advisory warnings.
//
// # Overview
//
// The pipeline is split across focused packages:
//
//   - document: load YAML or JSON into an immutable node tree with paths and positions
//   - resolver: resolve local $ref pointers, reporting cycles and dangling targets
//   - walker: typed traversal of a resolved document (operations, schemas, ...)
//   - validator: structural checks against the OpenAPI 3.0/3.1 meta-shape
//   - linter: registry of independent lint rules run on a worker pool
//   - report: deterministic aggregation and text/JSON/YAML rendering
//   - engine: the pipeline itself, configured per run
//
// # Quick Start
//
//	e, err := engine.New(engine.WithMode(report.ModeFull))
//	if err != nil {
//		log.Fatal(err)
//	}
//	rep, err := e.ValidateFile(ctx, "openapi.yaml")
//	if err != nil {
//		// only malformed input is fatal
//		log.Fatal(err)
//	}
//	fmt.Println(rep.Valid)
//
// # Command Line
//
// The oaslint binary exposes the same engine:
//
//	oaslint validate openapi.yaml
//	oaslint validate --json --lint-only openapi.yaml
//	oaslint rules
//	oaslint serve --addr :8080
//	oaslint mcp
package oaslint
