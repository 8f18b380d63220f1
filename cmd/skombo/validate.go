package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"skombo/internal/combo"
	"skombo/internal/validate"
)

func validateCmd() *cobra.Command {
	var withCombos bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run consistency checks against the catalog and rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(withCombos)
		},
	}
	cmd.Flags().BoolVar(&withCombos, "combos", false, "Also evaluate every combo in data.combos")
	return cmd
}

func runValidate(withCombos bool) error {
	ctx := context.Background()

	p, err := loadProject()
	if err != nil {
		return err
	}
	c, err := p.loadCatalog(ctx)
	if err != nil {
		return err
	}
	rules, err := p.loadRules()
	if err != nil {
		return err
	}

	var (
		inputs []combo.Input
		failed []combo.BatchResult
	)
	if withCombos {
		if p.cfg.Data.Combos == "" {
			return fmt.Errorf("--combos needs data.combos in %s", configPath)
		}
		inputs, failed, err = combo.LoadComboDir(p.cfg.Path(p.cfg.Data.Combos))
		if err != nil {
			return err
		}
	}

	report, err := validate.Run(c, rules, inputs, p.comboOptions())
	if err != nil {
		return err
	}
	for _, result := range failed {
		report.AddComboFailure(result.Input.Name, result.Err)
	}

	var errorIssues []validate.Issue
	var warnIssues []validate.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			errorIssues = append(errorIssues, issue)
		case validate.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.Character
		if issue.Move != "" {
			if location != "" {
				location += " "
			}
			location += issue.Move
		}
		if issue.Combo != "" {
			location = fmt.Sprintf("%s (combo %s)", location, issue.Combo)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
