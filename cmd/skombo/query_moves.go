package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func queryMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <character>",
		Short: "List a character's moves in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryMoves(args[0])
		},
	}
}

func runQueryMoves(character string) error {
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

	moves, err := db.ListMoves(ctx, character)
	if err != nil {
		return err
	}

	for _, move := range moves {
		name := strings.ReplaceAll(move.MoveName, "\n", " / ")
		if alt := strings.ReplaceAll(strings.TrimSpace(move.AltNames), "\n", ", "); alt != "" {
			name = fmt.Sprintf("%s (%s)", name, alt)
		}
		fmt.Fprintf(os.Stdout, "%s: %s\n", name, move.Damage)
	}
	return nil
}
