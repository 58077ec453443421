package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/giftbox/internal/httpserver"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := f.cfg
			if port != "" {
				cfg.Port = port
			}
			svc, st, err := openService(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpserver.New(svc, httpserver.Options{
				ClientOrigin:   cfg.ClientOrigin,
				PublicBaseURL:  cfg.PublicBaseURL,
				RequestTimeout: cfg.RequestTimeout,
			})
			log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting giftd")
			return srv.Start(ctx, cfg.Addr())
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default: $PORT)")
	return cmd
}
