package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-fer-extract/internal/config"
	"github.com/a3tai/mcp-fer-extract/internal/descriptions"
	"github.com/a3tai/mcp-fer-extract/internal/document"
	"github.com/a3tai/mcp-fer-extract/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *service.Service
	mcpServer *server.MCPServer
	log       zerolog.Logger

	stdin  io.Reader
	stdout io.Writer
}

// Option customises a Server.
type Option func(*Server)

// WithStdio replaces the process stdin and stdout used in stdio mode.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.stdin = in
		s.stdout = out
	}
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, svc *service.Service, logger zerolog.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		config:    cfg,
		service:   svc,
		mcpServer: mcpServer,
		log:       logger.With().Str("component", "mcp").Logger(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// fileHandler runs one service operation for a document path.
type fileHandler func(ctx context.Context, req service.FileRequest) (any, error)

func (s *Server) registerTools() {
	fileTools := []struct {
		name    string
		summary string
		handler fileHandler
	}{
		{
			name:    descriptions.ToolParseFER,
			summary: "Extract header fields, prior art and objections from a First Examination Report",
			handler: func(ctx context.Context, req service.FileRequest) (any, error) {
				return s.service.ParseFER(ctx, req)
			},
		},
		{
			name:    descriptions.ToolFormalRequirements,
			summary: "Reconstruct the PART-III formal requirements of a First Examination Report",
			handler: func(ctx context.Context, req service.FileRequest) (any, error) {
				return s.service.FormalRequirements(ctx, req)
			},
		},
		{
			name:    descriptions.ToolClaims,
			summary: "Split an amended claims document into numbered claims",
			handler: func(ctx context.Context, req service.FileRequest) (any, error) {
				return s.service.ParseClaims(ctx, req)
			},
		},
		{
			name:    descriptions.ToolPriorArtAbstract,
			summary: "Recover the abstract of a cited prior-art document",
			handler: func(ctx context.Context, req service.FileRequest) (any, error) {
				return s.service.ParsePriorArt(ctx, req)
			},
		},
		{
			name:    descriptions.ToolCoverSheet,
			summary: "Resolve applicant, title, background and summary of a Complete Specification",
			handler: func(ctx context.Context, req service.FileRequest) (any, error) {
				return s.service.ParseCoverSheet(ctx, req)
			},
		},
		{
			name:    descriptions.ToolInspectDocument,
			summary: "Report format, pages, tables, images, text layer and validity of a document",
			handler: func(ctx context.Context, req service.FileRequest) (any, error) {
				return s.service.InspectDocument(ctx, req)
			},
		},
	}

	for _, t := range fileTools {
		tool := mcp.NewTool(
			t.name,
			mcp.WithDescription(t.summary+"\n\n"+descriptions.GetToolDescription(t.name)),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path to the PDF or DOCX file, absolute or relative to the configured directory"),
			),
		)
		s.mcpServer.AddTool(tool, s.fileTool(t.name, t.handler))
	}

	serverInfoTool := mcp.NewTool(
		descriptions.ToolServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolServerInfo)),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// fileTool adapts a service operation to an MCP handler. Domain failures
// become tool errors; the handler itself never fails.
func (s *Server) fileTool(name string, handler fileHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		logger := s.log.With().Str("request_id", uuid.NewString()).Str("tool", name).Logger()

		path, err := request.RequireString("path")
		if err != nil {
			logger.Info().Err(err).Msg("invalid tool arguments")
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := handler(ctx, service.FileRequest{Path: path})
		event := logger.Info().Str("path", path).Dur("elapsed", time.Since(start))
		if err != nil {
			event.Err(err).Msg("tool call failed")
			return toolError(err), nil
		}
		event.Msg("tool call")

		return jsonResult(result), nil
	}
}

func (s *Server) handleServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	result, err := s.service.ServerInfo(ctx)
	event := s.log.Info().
		Str("request_id", uuid.NewString()).
		Str("tool", descriptions.ToolServerInfo).
		Dur("elapsed", time.Since(start))
	if err != nil {
		event.Err(err).Msg("tool call failed")
		return toolError(err), nil
	}
	event.Msg("tool call")

	return jsonResult(result), nil
}

func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	if errors.Is(err, document.ErrScannedDocument) {
		msg += "\n\nThe document has no usable text layer. Run " + descriptions.ToolInspectDocument +
			" for details; OCR the file before extracting."
	}
	return mcp.NewToolResultError(msg)
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// Run starts the MCP server in the configured mode and blocks until ctx is
// cancelled or the transport stops.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves JSON-RPC over stdin and stdout.
func (s *Server) runStdioMode(ctx context.Context) error {
	s.log.Debug().Str("directory", s.config.DocumentDirectory).Msg("starting stdio transport")

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(stdlog.New(s.log, "", 0))

	err := stdio.Listen(ctx, s.stdin, s.stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves the MCP SSE transport on the configured address.
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", addr).Str("directory", s.config.DocumentDirectory).Msg("starting SSE transport")
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down SSE server: %w", err)
	}
	s.log.Info().Msg("SSE transport stopped")
	return nil
}
