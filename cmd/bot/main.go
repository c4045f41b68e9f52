package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/production-bot/internal/bot"
	"github.com/Spok95/production-bot/internal/config"
	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/domain/production"
	"github.com/Spok95/production-bot/internal/domain/products"
	"github.com/Spok95/production-bot/internal/domain/rawmaterials"
	"github.com/Spok95/production-bot/internal/domain/users"
	"github.com/Spok95/production-bot/internal/infra/api"
	"github.com/Spok95/production-bot/internal/infra/db"
	httpx "github.com/Spok95/production-bot/internal/infra/http"
	"github.com/Spok95/production-bot/internal/infra/logger"
	"github.com/Spok95/production-bot/migrations"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"
)

func runMigrations(dsn string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, ".")
}

func main() {
	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}
	// Validate уже проверил пояс
	loc, _ := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Состояние диалогов и пользователи: Postgres, если задан DSN, иначе память
	var (
		userStore  users.Store  = users.NewMemRepo()
		stateStore dialog.Store = dialog.NewMemStore()
	)
	if cfg.Postgres.DSN != "" {
		if err := runMigrations(cfg.Postgres.DSN); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		pool, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		log.Info("db connected")

		userStore = users.NewRepo(pool)
		stateStore = dialog.NewRepo(pool)
	} else {
		log.Warn("postgres.dsn is empty, dialog state is kept in memory")
	}

	backend := api.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log.With("component", "api"))
	rawRepo := rawmaterials.NewRepo(backend)
	prodRepo := products.NewRepo(backend)
	productionRepo := production.NewRepo(backend)

	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		os.Exit(1)
	}
	log.Info("telegram authorized", "username", tg.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.TimeoutSec
	updates := tg.GetUpdatesChan(u)

	b := bot.New(tg, log.With("component", "bot"), bot.Deps{
		Users:        userStore,
		States:       stateStore,
		RawMaterials: rawRepo,
		Products:     prodRepo,
		Production:   productionRepo,
		AdminChatID:  cfg.Telegram.AdminChatID,
		Location:     loc,
	})

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, productionRepo, loc, log.With("component", "http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := b.Run(gctx, updates)
		tg.StopReceivingUpdates()
		// бот остановился сам: гасим и HTTP
		stop()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		log.Info("HTTP server started", "addr", cfg.HTTP.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("graceful shutdown complete")
}
