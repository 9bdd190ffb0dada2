package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/cooldown"
	"github.com/Zachkp/portfolio/internal/page"
	"github.com/Zachkp/portfolio/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"addr", cfg.Addr(),
		"env", cfg.Env,
		"contact_sink", cfg.Contact.Sink,
		"cooldown", cfg.Contact.Cooldown,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	portfolio, err := content.Default()
	if err != nil {
		return err
	}

	store, closeStore, err := openSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Cooldown is optional; a redis outage at boot only disables it.
	var limiter contact.Limiter
	var keyer web.ClientKeyer
	if cfg.CooldownEnabled() {
		rdb, err := cooldown.Connect(ctx, cfg.Contact.RedisURL)
		if err != nil {
			logger.Warn("cooldown disabled", "error", err)
		} else {
			defer rdb.Close()
			hasher, err := cooldown.NewHasher()
			if err != nil {
				return err
			}
			limiter = cooldown.NewLimiter(rdb, cfg.Contact.Cooldown)
			keyer = hasher
			logger.Info("cooldown enabled", "window", cfg.Contact.Cooldown)
		}
	}

	var probe page.ResumeProbe = page.FileProbe{Path: cfg.Resume.Path}
	resumeURL := "/resume.pdf"
	if cfg.Resume.URL != "" {
		probe = page.HTTPProbe{URL: cfg.Resume.URL, Client: &http.Client{Timeout: 2 * time.Second}}
		resumeURL = cfg.Resume.URL
	}

	composer := page.NewComposer(portfolio, probe, resumeURL, cfg.Dev(), logger)
	go composer.WatchResume(ctx, cfg.Resume.Refresh)
	svc := contact.NewService(store, limiter, logger)
	handler := web.NewHandler(composer, svc, keyer, web.Resume{
		Path: cfg.Resume.Path,
		Name: portfolio.Profile.ResumeName,
	}, cfg.Contact.Timeout, logger)

	if !cfg.Dev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(web.RequestLogger(logger), web.Recovery(logger))
	if err := web.Mount(r, handler); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Contact.Timeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Dev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
