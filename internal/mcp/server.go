package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"skombo/internal/catalog"
	"skombo/internal/combo"
)

type Server struct {
	catalog   *catalog.Catalog
	evaluator *combo.Evaluator
	mcp       *sdk.Server
}

func NewServer(c *catalog.Catalog, evaluator *combo.Evaluator, version string) *Server {
	s := &Server{
		catalog:   c,
		evaluator: evaluator,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "skombo",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
