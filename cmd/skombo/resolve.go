package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"skombo/internal/resolve"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <character> <move>",
		Short: "Show which catalog rows a move notation resolves to",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0], strings.Join(args[1:], " "))
		},
	}
	return cmd
}

func runResolve(character, move string) error {
	ctx := context.Background()

	p, err := loadProject()
	if err != nil {
		return err
	}
	c, evaluator, err := p.evaluator(ctx)
	if err != nil {
		return err
	}
	name, err := c.Character(character)
	if err != nil {
		return err
	}

	res := evaluator.Resolver().Resolve(resolve.NewContext(), name, move)
	if res.State == resolve.StateNotFound {
		fmt.Fprintf(os.Stdout, "%s: no move matches %q\n", name, move)
		return nil
	}

	fmt.Fprintf(os.Stdout, "%s -> %s [%s]\n", move, res.Token, res.State)
	for _, entry := range res.Entries {
		fmt.Fprintf(os.Stdout, "  - %s: %s\n", strings.ReplaceAll(entry.MoveName, "\n", " / "), entry.Damage)
	}
	return nil
}
