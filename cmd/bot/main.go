package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockChat/internal/chat"
	"StockChat/internal/collector"
	"StockChat/internal/config"
	"StockChat/internal/dispatch"
	"StockChat/internal/logging"
	"StockChat/internal/notifier"
	"StockChat/internal/oracle"
	"StockChat/internal/recorder"
	"StockChat/internal/scheduler"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}

	root := &cobra.Command{
		Use:          "stockchat",
		Short:        "Ask questions about a stock and get answers from technical indicators",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", cfgPath, "path to the YAML config file")
	root.AddCommand(newConsoleCmd(&cfgPath), newTelegramCmd(&cfgPath))
	return root
}

func newConsoleCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Chat on standard input/output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build(*cfgPath)
			if err != nil {
				return err
			}
			defer a.close()

			if a.startupErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), chat.StartupErrorReply(a.startupErr))
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return chat.RunConsole(ctx, a.svc, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newTelegramCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Serve the chat as a Telegram bot (one conversation per chat)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build(*cfgPath)
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.Telegram.BotToken == "" {
				return errors.New("telegram.bot_token is required")
			}
			tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Proxy)
			tn.OnStart = func(chatID int64) { a.svc.Sessions.End(sessionID(chatID)) }

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().Msg("telegram polling started")
			tn.StartPolling(ctx, func(ctx context.Context, chatID int64, text string) string {
				return a.svc.Handle(ctx, sessionID(chatID), text)
			})
			log.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram:%d", chatID)
}

type app struct {
	cfg        *config.Config
	svc        *chat.Service
	sched      *scheduler.Scheduler
	rec        recorder.Recorder
	startupErr error
}

// build wires the application. Configuration problems that a user can fix
// (such as a missing credential) are kept in startupErr rather than failing.
func build(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	log.Info().Str("config", cfgPath).Msg("stockchat starting")

	cfg.ResolveCredential()
	startupErr := cfg.Validate()
	if startupErr != nil {
		log.Error().Err(startupErr).Msg("config validation failed, chat disabled")
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewBarsAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
	}
	log.Info().Str("source", fetcher.Name()).Str("lookback", cfg.DataSource.Lookback).Msg("data source ready")

	engine := collector.NewCollector(fetcher, cfg.DataSource.Lookback)
	llm := oracle.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.Proxy, cfg.OpenAI.Timeout)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sessions := chat.NewSessionStore(cfg.Session.IdleTTL)
	svc := chat.NewService(dispatch.NewLoop(llm, engine), sessions, rec, startupErr)

	sched := scheduler.NewScheduler(sessions, rec)
	if err := sched.RegisterSweep(cfg.Session.SweepCron); err != nil {
		rec.Close()
		return nil, err
	}
	sched.Start()

	return &app{cfg: cfg, svc: svc, sched: sched, rec: rec, startupErr: startupErr}, nil
}

func (a *app) close() {
	a.sched.Stop()
	if err := a.rec.Close(); err != nil {
		log.Warn().Err(err).Msg("close recorder")
	}
	log.Info().Msg("stockchat stopped")
}
