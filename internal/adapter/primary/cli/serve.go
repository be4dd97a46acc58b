package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"dpui/internal/adapter/primary/web"
	"dpui/internal/domain"
	"dpui/internal/logging"
	"dpui/internal/settings"
	"dpui/internal/usecase"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, event stream and web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			// tray clicks and hotkey presses come back through the hub
			events, cancel := a.hub.Subscribe()
			defer cancel()
			go usecase.Dispatch(ctx, events, a.displays, a.hub)

			addr := current.Addr
			srv := web.NewServer(web.Deps{
				Displays: a.displays,
				Presets:  a.presets,
				Hotkeys:  a.hotkeys,
				Firer:    a.registry,
				Menu:     a.menu,
				Events:   a.hub,
			}, addr)
			fmt.Fprintf(cmd.OutOrStdout(), "dpui running at http://%s\n", addr)
			logging.Infof("dpui UI: http://%s (tool=%s dry-run=%t)", addr, current.Tool, dryRun)

			go func() {
				<-ctx.Done()
				a.hub.Publish(domain.Event{Type: domain.EventQuit})
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", settings.Default().Addr, "HTTP listen address:port")
	return cmd
}
