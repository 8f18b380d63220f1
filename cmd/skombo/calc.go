package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"skombo/internal/combo"
)

func calcCmd() *cobra.Command {
	var expected float64
	var verbose bool
	cmd := &cobra.Command{
		Use:   "calc <character> <notation>...",
		Short: "Calculate the damage of one combo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(args[0], strings.Join(args[1:], " "), expected, verbose)
		},
	}
	cmd.Flags().Float64Var(&expected, "expected", 0, "Expected damage to compare against")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every hit and how each move was resolved")
	return cmd
}

func runCalc(character, notation string, expected float64, verbose bool) error {
	ctx := context.Background()

	p, err := loadProject()
	if err != nil {
		return err
	}
	_, evaluator, err := p.evaluator(ctx)
	if err != nil {
		return err
	}

	report, err := evaluator.Evaluate(combo.Input{
		Name:           "cli",
		Character:      character,
		ExpectedDamage: expected,
		Notation:       notation,
	})
	if err != nil {
		return err
	}

	if verbose {
		printSteps(os.Stdout, report)
		fmt.Fprintln(os.Stdout, "")
		printHits(os.Stdout, report)
		fmt.Fprintln(os.Stdout, "")
	}

	fmt.Fprintf(os.Stdout, "%s: %d damage\n", report.Character, report.TotalDamage)
	if expected != 0 {
		fmt.Fprintf(os.Stdout, "  Expected:   %d\n", report.ExpectedDamage)
		fmt.Fprintf(os.Stdout, "  Difference: %d (%s)\n", report.Difference, combo.PercentLabel(report))
	}
	if len(report.Unresolved) > 0 {
		fmt.Fprintf(os.Stdout, "  Unresolved: %s\n", strings.Join(report.Unresolved, ", "))
	}
	return nil
}

func printSteps(out io.Writer, report *combo.Report) {
	fmt.Fprintln(out, "Moves:")
	for _, step := range report.Steps {
		if step.Kara {
			fmt.Fprintf(out, "  - %s: kara cancel\n", step.Token)
			continue
		}
		resolved := step.Token
		if step.Resolved != "" && step.Resolved != step.Token {
			resolved = fmt.Sprintf("%s as %s", step.Token, step.Resolved)
		}
		fmt.Fprintf(out, "  - %s [%s] %s\n", resolved, step.State, strings.Join(step.Moves, ", "))
	}
}

func printHits(out io.Writer, report *combo.Report) {
	fmt.Fprintf(out, "%-4s %-24s %7s %8s %7s %7s\n", "HIT", "MOVE", "DAMAGE", "SCALING", "SCALED", "TOTAL")
	for _, hit := range report.Hits {
		name := strings.ReplaceAll(hit.MoveName, "\n", " / ")
		if hit.KaraCanceled {
			name += " (kara)"
		}
		fmt.Fprintf(out, "%-4d %-24s %7d %8.3f %7d %7d\n",
			hit.HitNumber, name, hit.Damage, hit.Scaling, hit.ScaledDamage, hit.TotalForCombo)
	}
}
