package main

import (
	"context"

	"github.com/spf13/cobra"

	"skombo/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := loadProject()
	if err != nil {
		return err
	}
	c, evaluator, err := p.evaluator(ctx)
	if err != nil {
		return err
	}

	server := mcp.NewServer(c, evaluator, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
