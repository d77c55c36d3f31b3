package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/voicetreelab/lazy-tutorial/internal/config"
	"github.com/voicetreelab/lazy-tutorial/internal/tutorial"
	"golang.org/x/sync/errgroup"
)

// ToolGetChildren is the name of the lookup tool exposed over MCP
const ToolGetChildren = "get_tutorial_children"

const shutdownTimeout = 5 * time.Second

type MiddlewareFunc func(http.Handler) http.Handler

func chainMiddleware(h http.Handler, middlewares ...MiddlewareFunc) http.Handler {
	for _, mw := range middlewares {
		h = mw(h)
	}
	return h
}

func newAuthMiddleware(tokens []string) MiddlewareFunc {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		tokenSet[token] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(tokens) != 0 {
				token := r.Header.Get("Authorization")
				token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
				if token == "" {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				if _, ok := tokenSet[token]; !ok {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loggerMiddleware(prefix string) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("<%s> Request [%s] %s", prefix, r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}

func recoverMiddleware(prefix string) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Printf("<%s> Recovered from panic: %v", prefix, err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// NewMCPServer creates an MCP server exposing the provider's lookup as a tool
func NewMCPServer(cfg *config.ServerConfig, provider *tutorial.Provider) *server.MCPServer {
	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if cfg.Options.LogOn() {
		serverOpts = append(serverOpts, server.WithLogging())
	}

	mcpServer := server.NewMCPServer(cfg.Name, cfg.Version, serverOpts...)

	getChildrenTool := mcp.Tool{
		Name: ToolGetChildren,
		Description: "Navigate the " + provider.Name() + " tree. Returns a JSON array of the children at the given path: " +
			"plain strings are entries, single-key objects are sections mapping their label to their own children.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Slash-separated section path (e.g. '/Navigation/Modes'). Use empty string or '/' for root.",
				},
			},
		},
	}

	mcpServer.AddTool(getChildrenTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := tutorial.RootPath
		if request.Params.Arguments != nil {
			if argsMap, ok := request.Params.Arguments.(map[string]interface{}); ok {
				if pathVal, ok := argsMap["path"].(string); ok {
					path = pathVal
				}
			}
		}

		jsonBytes, err := provider.MarshalChildren(path)
		if err != nil {
			return nil, err
		}

		if cfg.Options.LogOn() {
			log.Printf("<%s> %s path=%q", cfg.Name, ToolGetChildren, path)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(jsonBytes)),
			},
		}, nil
	})

	return mcpServer
}

// NewHandler wraps the MCP server in the configured HTTP transport and middleware
func NewHandler(cfg *config.ServerConfig, mcpServer *server.MCPServer) (http.Handler, error) {
	var handler http.Handler
	switch cfg.Type {
	case config.ServerTypeSSE:
		handler = server.NewSSEServer(
			mcpServer,
			server.WithStaticBasePath(""),
			server.WithBaseURL(cfg.BaseURL),
		)
	case config.ServerTypeStreamable:
		handler = server.NewStreamableHTTPServer(
			mcpServer,
			server.WithStateLess(true),
		)
	default:
		return nil, fmt.Errorf("unknown server type: %s", cfg.Type)
	}

	middlewares := make([]MiddlewareFunc, 0)
	middlewares = append(middlewares, recoverMiddleware(cfg.Name))
	if cfg.Options.LogOn() {
		middlewares = append(middlewares, loggerMiddleware(cfg.Name))
	}
	if cfg.Options != nil && len(cfg.Options.AuthTokens) > 0 {
		middlewares = append(middlewares, newAuthMiddleware(cfg.Options.AuthTokens))
	}
	return chainMiddleware(handler, middlewares...), nil
}

// Start serves the provider until ctx is cancelled
func Start(ctx context.Context, cfg *config.Config, provider *tutorial.Provider) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	mcpServer := NewMCPServer(cfg.Server, provider)

	if cfg.Server.Type == config.ServerTypeStdio {
		return serveStdio(ctx, cfg.Server, mcpServer)
	}

	handler, err := NewHandler(cfg.Server, mcpServer)
	if err != nil {
		return err
	}
	httpMux := http.NewServeMux()
	httpMux.Handle("/", handler)
	return serveHTTP(ctx, cfg.Server, httpMux)
}

func serveStdio(ctx context.Context, cfg *config.ServerConfig, mcpServer *server.MCPServer) error {
	stdioServer := server.NewStdioServer(mcpServer)
	stdioServer.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	log.Printf("<%s> Serving MCP over stdio", cfg.Name)
	err := stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server failed: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, cfg *config.ServerConfig, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	errorGroup, groupCtx := errgroup.WithContext(ctx)
	errorGroup.Go(func() error {
		log.Printf("<%s> %s server listening on %s", cfg.Name, cfg.Type, cfg.Addr)
		hErr := httpServer.ListenAndServe()
		if hErr != nil && !errors.Is(hErr, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", hErr)
		}
		return nil
	})
	errorGroup.Go(func() error {
		<-groupCtx.Done()
		log.Printf("<%s> Shutting down", cfg.Name)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		err := httpServer.Shutdown(shutdownCtx)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return errorGroup.Wait()
}
