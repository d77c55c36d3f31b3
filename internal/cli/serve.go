package cli

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/voicetreelab/lazy-tutorial/internal/config"
	"github.com/voicetreelab/lazy-tutorial/internal/server"
	"github.com/voicetreelab/lazy-tutorial/internal/tutorial"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       string
		serverType string
		shallow    bool
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tutorial over MCP",
		Long: `Expose the tutorial tree as an MCP server with a single tool, get_tutorial_children.

Without --config the server speaks MCP over stdio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if serverType != "" {
				cfg.Server.Type = config.ServerType(serverType)
			}
			cfg.SetPort(port)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			mode := renderMode(shallow || cfg.Server.Options.ShallowOn())
			provider := tutorial.NewProvider(
				tutorial.WithName(cfg.Server.Name),
				tutorial.WithRenderMode(mode),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Printf("Starting %s %s (%s, %s render)", cfg.Server.Name, cfg.Server.Version, cfg.Server.Type, mode)
			return server.Start(ctx, cfg, provider)
		},
	}

	serveCmd.Flags().StringVar(&configPath, "config", "", "path to config file or a http(s) url")
	serveCmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config), e.g. '8080' or ':8080'")
	serveCmd.Flags().StringVar(&serverType, "type", "", "transport: stdio, sse or streamable-http (overrides config)")
	serveCmd.Flags().BoolVar(&shallow, "shallow", false, "render nested sections as empty arrays (legacy output)")
	return serveCmd
}
