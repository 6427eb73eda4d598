package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/WST-T/pweaseHiredMe/internal/chat"
	"github.com/WST-T/pweaseHiredMe/internal/command"
	"github.com/WST-T/pweaseHiredMe/internal/config"
	"github.com/WST-T/pweaseHiredMe/internal/database"
	"github.com/WST-T/pweaseHiredMe/internal/handler"
	"github.com/WST-T/pweaseHiredMe/internal/logger"
	"github.com/WST-T/pweaseHiredMe/internal/repository"
	"github.com/WST-T/pweaseHiredMe/internal/scheduler"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	DB         *pgxpool.Pool
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s tz=%s", cfg.Env, cfg.Timezone)

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		sugar.Fatal(err)
	}

	loc := cfg.Location()
	repo := repository.NewRepository(pool, loc)

	// Console transport stands in for the chat platform connection; a real
	// chat SDK gateway implements chat.Messenger the same way and consumes
	// cfg.BotToken for its session.
	gateway := chat.NewConsole(os.Stdin, os.Stdout, cfg.ChannelID)

	h := &handler.Handler{
		Logger:    log,
		Store:     repo,
		Messenger: gateway,
		ChannelID: cfg.ChannelID,
		Loc:       loc,
		Prefix:    cfg.CommandPrefix,
	}

	router := command.NewRouter(cfg.CommandPrefix, log)
	router.Handle("schedule", h.Schedule)
	router.Handle("my_interviews", h.MyInterviews)
	router.Handle("total", h.Total)
	router.Handle("update_interview", h.UpdateInterview)
	router.Handle("delete_interview", h.DeleteInterview)
	router.Handle("all_interviews", h.AllInterviews)
	router.Handle("announce", h.Announce)
	router.Handle("help", h.Help)

	jobs := scheduler.New(repo, gateway, scheduler.Config{
		ChannelID:    cfg.ChannelID,
		Location:     loc,
		ReminderHour: cfg.Jobs.ReminderHour,
		RankingHour:  cfg.Jobs.RankingHour,
	}, log)
	jobs.Start(ctx)
	defer jobs.Stop()

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
	}
	go func() {
		if err := app.serve(ctx); err != nil {
			sugar.Errorw("status server stopped", "err", err)
		}
	}()

	sugar.Infof("bot ready, channel_id=%d", cfg.ChannelID)

	err = gateway.Run(ctx, func(ctx context.Context, msg *chat.Message) string {
		reply, _ := router.Dispatch(ctx, msg)
		return reply
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		sugar.Errorw("gateway stopped", "err", err)
	}
}
