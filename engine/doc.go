// Package engine runs the full oaslint pipeline: load, resolve, validate,
// lint and aggregate.
//
// A run is configured with functional options:
//
//	res, err := engine.Run(ctx,
//	    engine.WithFilePath("openapi.yaml"),
//	    engine.WithDisabledRules("servers"),
//	)
//	if err != nil {
//	    return err // parse failures and invalid configuration
//	}
//	if !res.Passed() {
//	    _ = report.WriteText(os.Stdout, res.Report, report.TextOptions{})
//	}
//
// For many documents, build an Engine once with New and call Check,
// CheckFile, CheckBytes or CheckReader; an Engine is safe for concurrent use.
//
// Only a parse failure (or a cancelled context) stops a run. Reference faults
// and structural violations are errors in the report, lint findings are
// warnings, and a lint rule that fails internally becomes a RULE_FAILURE
// warning.
package engine
