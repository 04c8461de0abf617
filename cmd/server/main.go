package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/trendaura-auth/internal/config"
	"github.com/iliyamo/trendaura-auth/internal/database"
	"github.com/iliyamo/trendaura-auth/internal/handler"
	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/mail"
	"github.com/iliyamo/trendaura-auth/internal/middleware"
	"github.com/iliyamo/trendaura-auth/internal/queue"
	"github.com/iliyamo/trendaura-auth/internal/repository"
	"github.com/iliyamo/trendaura-auth/internal/router"
	"github.com/iliyamo/trendaura-auth/internal/service"
	"github.com/iliyamo/trendaura-auth/internal/storage"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("error", os.Stderr).Error(context.Background(), "load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stdout).With("env", cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Warn(ctx, "redis unavailable: response cache and email verification disabled")
	}

	assets, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		return err
	}

	var notifier *service.Notifier
	if cfg.Queue.Enabled {
		notifier = service.NewQueueNotifier(cfg.Queue.URL, cfg.Queue.Name, log)
		if cfg.Queue.Consume {
			go func() {
				if err := queue.StartNotificationConsumer(ctx, cfg.Queue.URL, cfg.Queue.Name, mailer, log); err != nil && !errors.Is(err, context.Canceled) {
					log.Error(ctx, "notification consumer stopped", "error", err)
				}
			}()
		}
	} else {
		notifier = service.NewDirectNotifier(mailer, log)
	}

	var codes service.VerificationCodes
	if rdb != nil {
		codes = service.NewCodeStore(rdb, service.VerificationCodeTTL)
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)

	accounts := service.NewAccountService(service.AccountDeps{
		Users:      users,
		Registrar:  repository.NewRegistrar(db, users, profiles),
		Profiles:   profiles,
		Tokens:     tokens,
		Assets:     assets,
		Codes:      codes,
		Notify:     notifier,
		Log:        log,
		BcryptCost: cfg.BcryptCost,
	})
	catalog := service.NewCatalogService(repository.NewCollectionRepo(db), assets, log)

	auth := middleware.NewAuth(tokens, log)
	cache := middleware.NewResponseCache(cfg.Cache, rdb, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	router.Register(e, router.Handlers{
		Auth:          handler.NewAuthHandler(accounts, log, cfg.RequestTimeout),
		Profiles:      handler.NewProfileHandler(accounts, log, cfg.RequestTimeout, cfg.Storage.MaxBytes),
		Collections:   handler.NewCollectionHandler(catalog, cache, log, cfg.RequestTimeout, cfg.Storage.MaxBytes),
		Notifications: handler.NewNotificationHandler(notifier),
		Assets:        assets,
	}, auth, cache)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "http shutdown", "error", err)
	}
	notifier.Wait()
	return nil
}
