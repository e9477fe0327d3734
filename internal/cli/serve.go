package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treedisplay/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP host.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mounted diagrams over HTTP",
		Long: `Serve mounted diagrams over HTTP.

POST a {"pos": ..., "tree": ...} document to /api/diagrams and open
/diagrams/{id} in a browser. The page reports its container size back to the
server, which centers the diagram on the first non-empty measurement.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.WithLogger(loggerFromContext(ctx)), server.WithRunner(runner))
			printKeyValue("Listening", StyleLink.Render("http://"+addr))
			printKeyValue("Mount", "POST /api/diagrams")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
