package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/cli/config"
	controller "github.com/preferencial-eng/incendio/pkg/controller/http"
	"github.com/preferencial-eng/incendio/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		firestoreCfg config.Firestore
		whatsappCfg  config.WhatsApp
		siteCfg      config.Site
		authCfg      config.Auth
	)

	flags := joinFlags(
		serverCfg.Flags(),
		firestoreCfg.Flags(),
		whatsappCfg.Flags(),
		siteCfg.Flags(),
		authCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting incendio server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("firestore", firestoreCfg),
				slog.Any("whatsapp", whatsappCfg),
				slog.Any("site", siteCfg),
				slog.Any("auth", authCfg),
			)

			// Load site layout first: everything downstream depends on it
			site, err := siteCfg.Configure(ctx)
			if err != nil {
				return err
			}

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			notifier := whatsappCfg.Configure(site)
			if !notifier.IsConfigured() {
				logger.Warn("WhatsApp relay not configured, issue notifications will be skipped")
			}

			authUC := usecase.NewAuth(repo, authCfg.AdminEmail)
			issueUC := usecase.NewIssue(repo, notifier, site)
			dashboardUC := usecase.NewDashboard(repo, site)

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				site,
				authUC,
				issueUC,
				dashboardUC,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
