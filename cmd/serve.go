package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/spf13/cobra"

	"github.com/pivolan/torque_analyzer/analysis"
	"github.com/pivolan/torque_analyzer/config"
	"github.com/pivolan/torque_analyzer/server"
	"github.com/pivolan/torque_analyzer/telegram"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, and the Telegram bot when TG_TOKEN is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			logger := newLogger(cfg)
			svc := newService(cfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.TgToken != "" {
				if err := startBot(cfg, svc, logger); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           server.New(svc, logger, cfg.MaxUploadBytes).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening", slog.String("addr", cfg.HTTPAddr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func startBot(cfg *config.Config, svc *analysis.Service, logger *slog.Logger) error {
	api, err := tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		return err
	}
	logger.Info("telegram bot authorized", slog.String("account", api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := api.GetUpdatesChan(u)
	if err != nil {
		return err
	}
	go telegram.NewBot(api, svc, logger, cfg.MaxUploadBytes).Run(updates)
	return nil
}
