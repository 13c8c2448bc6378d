// Package mcp exposes Hub model discovery and card maintenance as tools
// over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hubcard/hubcard/internal/cards"
	"github.com/hubcard/hubcard/internal/hub"
)

// Server wraps the MCP SDK server and the card service.
type Server struct {
	mcpServer *mcp.Server
	hub       *hub.Client
	cards     *cards.Service
	log       *slog.Logger
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string

	Hub   *hub.Client
	Cards *cards.Service

	// Logger receives operational logs. The transport owns stdout, so
	// this must write to stderr or a file.
	Logger *slog.Logger
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Hub == nil {
		return nil, fmt.Errorf("hub client is required")
	}
	if cfg.Cards == nil {
		return nil, fmt.Errorf("card service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		hub:       cfg.Hub,
		cards:     cfg.Cards,
		log:       logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport.
// This is a blocking call that handles all protocol communication.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.log.Info("mcp server starting")
	return s.mcpServer.Run(ctx, transport)
}
