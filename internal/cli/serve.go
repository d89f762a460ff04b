package cli

import (
	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneport/internal/server"
)

// serveCommand creates the serve command running the HTTP export service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export service",
		Long: `Run the HTTP export service.

The service accepts scene documents over HTTP and returns serialized
payloads as file attachments:

  POST /api/export/{format}?filename=chair   export a scene document
  GET  /api/formats                          list supported formats
  GET  /healthz                              health and version

The service shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			printInfo("Export service listening on %s", StyleHighlight.Render(cfg.Serve.Addr))
			return server.New(cfg, c.Logger).Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
