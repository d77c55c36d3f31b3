package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voicetreelab/lazy-tutorial/internal/config"
	"github.com/voicetreelab/lazy-tutorial/internal/tutorial"
)

func textOf(t *testing.T, content mcp.Content) string {
	t.Helper()
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", content)
		return ""
	}
}

func initialize(t *testing.T, ctx context.Context, c *client.Client) {
	t.Helper()
	require.NoError(t, c.Start(ctx))

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{Name: "tutorial-test"}
	initRequest.Params.Capabilities = mcp.ClientCapabilities{}

	_, err := c.Initialize(ctx, initRequest)
	require.NoError(t, err)
}

func callGetChildren(t *testing.T, ctx context.Context, c *client.Client, args map[string]interface{}) string {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Name = ToolGetChildren
	request.Params.Arguments = args

	result, err := c.CallTool(ctx, request)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	return textOf(t, result.Content[0])
}

func TestMCPServerInProcess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Default()
	provider := tutorial.NewProvider()
	mcpServer := NewMCPServer(cfg.Server, provider)

	c, err := client.NewInProcessClient(mcpServer)
	require.NoError(t, err)
	defer c.Close()
	initialize(t, ctx, c)

	t.Run("lists the lookup tool", func(t *testing.T) {
		tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)
		require.Len(t, tools.Tools, 1)
		assert.Equal(t, ToolGetChildren, tools.Tools[0].Name)
	})

	t.Run("returns the same JSON as the provider", func(t *testing.T) {
		expected, err := provider.MarshalChildren("/Navigation/Modes")
		require.NoError(t, err)

		text := callGetChildren(t, ctx, c, map[string]interface{}{"path": "/Navigation/Modes"})
		assert.Equal(t, string(expected), text)
	})

	t.Run("missing path defaults to root", func(t *testing.T) {
		expected, err := provider.MarshalChildren("/")
		require.NoError(t, err)

		text := callGetChildren(t, ctx, c, map[string]interface{}{})
		assert.Equal(t, string(expected), text)
	})

	t.Run("unknown path is an empty array, not an error", func(t *testing.T) {
		text := callGetChildren(t, ctx, c, map[string]interface{}{"path": "/Nonexistent"})
		assert.Equal(t, "[]", text)
	})
}

func TestMCPServerShallowProvider(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	provider := tutorial.NewProvider(tutorial.WithRenderMode(tutorial.RenderShallow))
	c, err := client.NewInProcessClient(NewMCPServer(config.Default().Server, provider))
	require.NoError(t, err)
	defer c.Close()
	initialize(t, ctx, c)

	text := callGetChildren(t, ctx, c, map[string]interface{}{"path": "/Navigation"})
	assert.Equal(t, `[{"Moving Around":[]},{"Modes":[]}]`, text)
}

func TestStreamableHandlerWithAuth(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Default()
	cfg.Server.Type = config.ServerTypeStreamable
	cfg.Server.Options.AuthTokens = []string{"secret"}

	handler, err := NewHandler(cfg.Server, NewMCPServer(cfg.Server, tutorial.NewProvider()))
	require.NoError(t, err)

	testServer := httptest.NewServer(handler)
	defer testServer.Close()

	t.Run("rejects requests without a token", func(t *testing.T) {
		resp, err := http.Post(testServer.URL, "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("serves the tool with a valid token", func(t *testing.T) {
		c, err := client.NewStreamableHttpClient(testServer.URL,
			transport.WithHTTPHeaders(map[string]string{"Authorization": "Bearer secret"}),
		)
		require.NoError(t, err)
		defer c.Close()
		initialize(t, ctx, c)

		text := callGetChildren(t, ctx, c, map[string]interface{}{"path": "/Next Steps"})
		assert.Contains(t, text, "Happy navigating!")
	})
}

func TestNewHandlerRejectsStdio(t *testing.T) {
	cfg := config.Default()
	_, err := NewHandler(cfg.Server, NewMCPServer(cfg.Server, tutorial.NewProvider()))
	assert.Error(t, err)
}

func TestRecoverMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := chainMiddleware(panicking, recoverMiddleware("test"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name     string
		tokens   []string
		header   string
		expected int
	}{
		{"no tokens configured", nil, "", http.StatusNoContent},
		{"missing header", []string{"a"}, "", http.StatusUnauthorized},
		{"wrong token", []string{"a"}, "Bearer b", http.StatusUnauthorized},
		{"valid token", []string{"a", "b"}, "Bearer b", http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := chainMiddleware(ok, newAuthMiddleware(tc.tokens))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.expected, rec.Code)
		})
	}
}

func TestStartHTTPShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Type = config.ServerTypeStreamable
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, cfg, tutorial.NewProvider())
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
