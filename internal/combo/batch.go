package combo

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

type BatchResult struct {
	Input  Input
	Report *Report
	Err    error
}

// RunBatch evaluates inputs with at most workers concurrent evaluations.
// A combo that fails records its error and the batch carries on. Results
// keep input order.
func RunBatch(ctx context.Context, e *Evaluator, inputs []Input, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]BatchResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := e.Evaluate(in)
			if err != nil {
				e.logger.Warn("combo failed", "combo", in.Name, "error", err)
			}
			results[i] = BatchResult{Input: in, Report: report, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running batch: %w", err)
	}
	return results, nil
}

// MergeResults combines evaluated results with combos that failed to load,
// ordered by combo name.
func MergeResults(results, failed []BatchResult) []BatchResult {
	merged := make([]BatchResult, 0, len(results)+len(failed))
	merged = append(merged, results...)
	merged = append(merged, failed...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Input.Name < merged[j].Input.Name
	})
	return merged
}

type SummaryRow struct {
	Character            string
	Combo                string
	ExpectedDamage       int
	CalculatedDamage     int
	Difference           int
	PercentageDifference string
	Err                  error
}

// Flagged reports whether the combo's damage is off by at least half a
// percent, or could not be compared.
func (r SummaryRow) Flagged() bool {
	return r.Err != nil || r.PercentageDifference != "0%"
}

func Summarize(results []BatchResult) []SummaryRow {
	rows := make([]SummaryRow, 0, len(results))
	for _, result := range results {
		row := SummaryRow{
			Character: result.Input.Character,
			Combo:     result.Input.Name,
			Err:       result.Err,
		}
		if result.Report != nil {
			row.Character = result.Report.Character
			row.ExpectedDamage = result.Report.ExpectedDamage
			row.CalculatedDamage = result.Report.TotalDamage
			row.Difference = result.Report.Difference
			row.PercentageDifference = PercentLabel(result.Report)
		}
		rows = append(rows, row)
	}
	return rows
}

// PercentLabel formats the percent difference rounded to a whole number,
// or "n/a" when it is undefined.
func PercentLabel(r *Report) string {
	if !r.PercentDefined {
		return "n/a"
	}
	rounded := math.Round(r.PercentDifference)
	if rounded == 0 {
		// drop the sign of -0
		rounded = 0
	}
	return fmt.Sprintf("%.0f%%", rounded)
}
