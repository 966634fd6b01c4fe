package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/internal/server"
	"github.com/matzehuels/forcegraph/pkg/diagram"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagram sessions over HTTP",
		Long: `Start an HTTP server that creates diagrams from posted payloads and
exposes their frames, layout parameters, events and clustering.

Options from --config apply to diagrams whose payload carries none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			srv := server.New(diagram.NewRegistry(logger), logger, server.Options{
				Defaults:       opts,
				AllowedOrigins: origins,
			})
			printInfo("Serving on %s", StyleLink.Render("http://"+addr))
			if err := srv.Run(ctx, addr); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "allowed CORS origins (default: any)")
	return cmd
}
