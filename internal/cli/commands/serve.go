package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/st4conv/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Store bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP service",
		Long: `Serve conversions over HTTP.

Endpoints:
  POST /api/convert?name=<file>&format=json|yaml|xlsx&encoding=<name>
       Body is the raw ST4 file. Returns the serialized model with the
       X-St4-Diagnostics and X-Conversion-ID headers.
  POST /api/inspect   Returns entity counts and diagnostics as JSON.
  GET  /healthz       Returns ok.`,
		Example: `  st4conv serve --addr :9090 --store`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config)")
	cmd.Flags().Int64("max-body-bytes", 0, "Largest accepted upload in bytes (default from config)")
	cmd.Flags().BoolVar(&opts.Store, "store", false, "Save every successful conversion in the SQLite store")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srvCfg := server.Config{
		Addr:         cfg.Serve.Addr,
		MaxBodyBytes: cfg.Serve.MaxBodyBytes,
		Encoding:     cfg.Encoding,
		Export:       cmdCtx.ExportOptions(),
		Logger:       cmdCtx.Logger,
	}
	if opts.Store {
		s, err := cmdCtx.OpenStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		srvCfg.Store = s
	}

	cmdCtx.Renderer.Muted("Listening on " + cfg.Serve.Addr)
	return server.New(srvCfg).Serve(ctx)
}
