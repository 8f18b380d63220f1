package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func querySQLCmd() *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Execute a raw SQL query against the catalog database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(strings.Join(args, " "), queryArgs(params))
		},
	}
	cmd.Flags().StringArrayVar(&params, "arg", nil, "Positional query argument (repeatable)")
	return cmd
}

func runSQL(query string, args []any) error {
	ctx := context.Background()

	p, err := loadProject()
	if err != nil {
		return err
	}
	db, err := p.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := db.RunSQL(ctx, query, args...)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(result.Maps(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

func queryArgs(params []string) []any {
	args := make([]any, 0, len(params))
	for _, param := range params {
		args = append(args, param)
	}
	return args
}
