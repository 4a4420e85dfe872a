package mcp

import (
	"context"

	"dealboard/internal/config"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Version is reported to clients during initialization. Set from the command layer.
var Version = "dev"

// Server exposes the deal pipeline as MCP tools over stdio.
type Server struct {
	cfg     *config.AppConfig
	session *session
	sdk     *sdk.Server
}

// NewServer creates the server and registers its tools.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		session: newSession(cfg),
		sdk:     sdk.NewServer(&sdk.Implementation{Name: "dealboard", Version: Version}, nil),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves requests on stdin/stdout until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Str("version", Version).Msg("MCP server listening on stdio")
	return s.sdk.Run(ctx, &sdk.StdioTransport{})
}
