// Package report combines the errors and warnings of a run into a single
// deterministic Report and renders it as text, JSON or YAML.
//
// Aggregate sorts both lists by path, then code, then message and drops
// exact duplicates:
//
//	r := report.Aggregate(errs, warnings).Filter(report.ModeFull)
//	if err := report.WriteJSON(os.Stdout, r); err != nil {
//		return err
//	}
//
// In ModeLintOnly the errors are removed before validity is computed, so a
// lint-only report is always valid.
package report
