package main

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"accountability-coach/internal/bot"
	"accountability-coach/internal/config"
	"accountability-coach/internal/dedupe"
	"accountability-coach/internal/gateway"
	"accountability-coach/internal/logger"
	"accountability-coach/internal/repository"
	"accountability-coach/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coach",
		Short:         "Accountability coach Telegram bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newPollCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Receive updates via the Telegram webhook (push mode)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(cfg config.Config, app *application) (gateway.Gateway, error) {
				if err := cfg.RequireWebhookSecret(); err != nil {
					return nil, err
				}
				return gateway.NewWebhookServer(app.processor, cfg.WebhookSecret, cfg.ListenAddr), nil
			})
		},
	}
}

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Fetch updates via long polling (pull mode)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(cfg config.Config, app *application) (gateway.Gateway, error) {
				return gateway.NewPoller(app.api, app.processor), nil
			})
		},
	}
}

// application bundles everything the gateways share.
type application struct {
	api       *tgbotapi.BotAPI
	processor *gateway.Processor
}

func run(parent context.Context, buildGateway func(config.Config, *application) (gateway.Gateway, error)) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot api: %w", err)
	}
	log.Info("bot authorized", log.String("account", api.Self.UserName))

	store := repository.NewStore(db)
	guard := dedupe.New(cfg.RedisAddr)
	defer guard.Close()

	app := &application{
		api:       api,
		processor: gateway.NewProcessor(bot.NewRouter(store), api, guard),
	}

	gw, err := buildGateway(cfg, app)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.SnapshotInterval > 0 {
		stats := service.NewStatsService(store)
		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleInterval(cfg.SnapshotInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := stats.Snapshot(jobCtx); err != nil {
				log.Error("activity snapshot failed", log.Any("err", err))
			}
		}); err != nil {
			return fmt.Errorf("schedule snapshot: %w", err)
		}
		scheduler.Start()
		g.Go(func() error {
			<-ctx.Done()
			scheduler.Stop()
			return nil
		})
	}

	g.Go(func() error {
		return gw.Run(ctx)
	})

	log.Info("accountability coach started")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
