package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skombo/internal/ingest"
)

var importFull bool

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the frame data and alias CSVs into the database",
		RunE:  runImport,
	}
	cmd.Flags().BoolVar(&importFull, "full", false, "Force a full import (ignore stored hashes)")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
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

	result, err := ingest.Run(ctx, p.cfg, db, ingest.Options{Full: importFull, Logger: p.logger})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Import complete.")
	fmt.Fprintf(os.Stdout, "  Moves imported:   %d\n", result.MovesImported)
	fmt.Fprintf(os.Stdout, "  Aliases imported: %d\n", result.AliasesImported)
	fmt.Fprintf(os.Stdout, "  Sources skipped:  %d\n", result.SourcesSkipped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("import completed with errors")
	}

	return nil
}
