package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "skombo",
		Short: "Combo damage calculator for Skullgirls frame data",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "skombo.yaml", "Path to the project config")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level from the config (debug, info, warn, error)")

	root.AddCommand(calcCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(importCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
