package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/oauthkit/oauthkit/internal/analytics"
	"github.com/oauthkit/oauthkit/internal/config"
	"github.com/oauthkit/oauthkit/internal/logger"
	"github.com/oauthkit/oauthkit/internal/oauth/models"
	"github.com/oauthkit/oauthkit/internal/requester"
	"github.com/oauthkit/oauthkit/internal/storage"
	"github.com/oauthkit/oauthkit/internal/web"
)

const shutdownTimeout = 5 * time.Second

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run a complete authorization flow against the configured provider",
	Long: `login starts a local callback server, prints the URL to open in a
browser, and completes the flow when the provider calls back: the code
is exchanged, tokens are stored, and the event is tracked.`,
	Run: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(loadConfig),
		requester.Module,
		storage.Module,
		analytics.Module,
		fx.Invoke(startLoginServer),
	)
	app.Run()

	if err := app.Err(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// startLoginServer wires the web adapter onto the local callback server
// and shuts the app down once one flow completes.
func startLoginServer(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	doer requester.Doer,
	store storage.TokenStore,
	tracker *analytics.Tracker,
) error {
	onSuccess := func(userID string, tokens *models.TokenSet) {
		pterm.Success.Printfln("Logged in as %s", pterm.LightGreen(userID))
		if expiresAt, ok := tokens.ExpiresAt(); ok {
			pterm.Info.Printfln("Access token expires %s", expiresAt.Format(time.RFC1123))
		}
		if err := shutdowner.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}

	handler, err := web.NewHandler(cfg.OAuth, doer, store, tracker, onSuccess)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: mux}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			go func() {
				if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
					logger.Error("callback server error", zap.Error(err))
				}
			}()
			pterm.Info.Printfln("Open %s to start the flow",
				pterm.LightGreen(fmt.Sprintf("http://%s/auth/login", addr)))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
	return nil
}
