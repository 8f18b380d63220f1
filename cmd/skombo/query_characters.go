package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func queryCharactersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "characters",
		Short: "List characters in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCharacters()
		},
	}
}

func runQueryCharacters() error {
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

	characters, err := db.ListCharacters(ctx)
	if err != nil {
		return err
	}
	if len(characters) == 0 {
		fmt.Fprintln(os.Stdout, "No characters found.")
		return nil
	}

	for _, character := range characters {
		fmt.Fprintf(os.Stdout, "%s (%d moves)\n", character.Name, character.Moves)
	}
	return nil
}
