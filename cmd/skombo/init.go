package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new skombo project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(".", projectName, dsn)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Database DSN (sqlite:// or postgres://); CSV files are read directly when empty")
	return cmd
}

const rulesTemplate = `version: 1
sequences:
  - character: Annie
    name: divekick
    motion: "236"
    button: K
    group: RE ENTRY
`

func runInit(dir, projectName, dsn string) error {
	configFile := filepath.Join(dir, "skombo.yaml")
	rulesFile := filepath.Join(dir, "rules.yaml")
	for _, path := range []string{configFile, rulesFile} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "project: %s\nversion: 1\n\n", projectName)
	b.WriteString("data:\n  frame_data: data/frame_data.csv\n  aliases: data/aliases.csv\n  combos: combos\n  rules: rules.yaml\n\n")
	if dsn != "" {
		fmt.Fprintf(&b, "database:\n  dsn: %s\n\n", dsn)
	}
	b.WriteString("log:\n  level: info\n  format: text\n\nbatch:\n  workers: 4\n")

	if err := os.WriteFile(configFile, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	if err := os.WriteFile(rulesFile, []byte(rulesTemplate), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", rulesFile, err)
	}
	for _, sub := range []string{"data", "combos"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	return nil
}
