package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the imported catalog from the CLI",
	}
	cmd.AddCommand(queryCharactersCmd())
	cmd.AddCommand(queryMovesCmd())
	cmd.AddCommand(querySQLCmd())
	return cmd
}
