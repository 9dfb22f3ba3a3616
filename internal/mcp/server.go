package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/lifsim/internal/config"
	"github.com/nvandessel/lifsim/internal/ratelimit"
)

// Server wraps the MCP SDK server and exposes the simulator as tools.
type Server struct {
	server       *sdk.Server
	cfg          *config.LifConfig
	logger       *slog.Logger
	toolLimiters ratelimit.ToolLimiters
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "lifsim")
	Version string // Server version

	// Lif supplies the defaults for every tool input. Nil means config.Default().
	Lif *config.LifConfig

	// Logger receives tool call records. Nil discards them.
	Logger *slog.Logger
}

// NewServer creates a new MCP server with lifsim tools.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("nil server config")
	}

	lifCfg := cfg.Lif
	if lifCfg == nil {
		lifCfg = config.Default()
	}
	if err := lifCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lifsim config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("mcp client initialized")
		},
	})

	s := &Server{
		server:       mcpServer,
		cfg:          lifCfg,
		logger:       logger,
		toolLimiters: ratelimit.NewToolLimiters(),
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return s.server.Run(ctx, &sdk.StdioTransport{})
}
