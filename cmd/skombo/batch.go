package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"skombo/internal/combo"
)

func batchCmd() *cobra.Command {
	var workers int
	var output string
	var flaggedOnly bool
	cmd := &cobra.Command{
		Use:   "batch [dir]",
		Short: "Calculate every combo CSV in a directory and compare with expected damage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runBatch(dir, workers, output, flaggedOnly)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent evaluations (defaults to batch.workers)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the summary as CSV to this file")
	cmd.Flags().BoolVar(&flaggedOnly, "flagged", false, "Only print combos whose damage does not match")
	return cmd
}

func runBatch(dir string, workers int, output string, flaggedOnly bool) error {
	ctx := context.Background()

	p, err := loadProject()
	if err != nil {
		return err
	}
	if dir == "" {
		if p.cfg.Data.Combos == "" {
			return fmt.Errorf("no combo directory given and data.combos is not set")
		}
		dir = p.cfg.Path(p.cfg.Data.Combos)
	}
	if workers == 0 {
		workers = p.cfg.Batch.Workers
	}

	inputs, failed, err := combo.LoadComboDir(dir)
	if err != nil {
		return err
	}
	_, evaluator, err := p.evaluator(ctx)
	if err != nil {
		return err
	}

	results, err := combo.RunBatch(ctx, evaluator, inputs, workers)
	if err != nil {
		return err
	}
	rows := combo.Summarize(combo.MergeResults(results, failed))

	flagged := 0
	fmt.Fprintf(os.Stdout, "%-12s %-32s %9s %11s %6s %6s\n", "CHARACTER", "COMBO", "EXPECTED", "CALCULATED", "DIFF", "%")
	for _, row := range rows {
		if row.Flagged() {
			flagged++
		} else if flaggedOnly {
			continue
		}
		if row.Err != nil {
			fmt.Fprintf(os.Stdout, "%-12s %-32s error: %v\n", row.Character, row.Combo, row.Err)
			continue
		}
		fmt.Fprintf(os.Stdout, "%-12s %-32s %9d %11d %6d %6s\n",
			row.Character, row.Combo, row.ExpectedDamage, row.CalculatedDamage, row.Difference, row.PercentageDifference)
	}
	fmt.Fprintf(os.Stdout, "\n%d combos, %d flagged\n", len(rows), flagged)

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		if err := writeSummaryCSV(f, rows); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
	}
	return nil
}

func writeSummaryCSV(w io.Writer, rows []combo.SummaryRow) error {
	cw := csv.NewWriter(w)
	header := []string{"Character", "Combo", "Expected Damage", "Calculated Damage", "Difference", "Percentage Difference", "Error"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		errText := ""
		if row.Err != nil {
			errText = row.Err.Error()
		}
		record := []string{
			row.Character,
			row.Combo,
			strconv.Itoa(row.ExpectedDamage),
			strconv.Itoa(row.CalculatedDamage),
			strconv.Itoa(row.Difference),
			row.PercentageDifference,
			errText,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
