package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aaryan1901/Gigyasa-backend/internal/audit"
	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
	"github.com/Aaryan1901/Gigyasa-backend/internal/config"
	"github.com/Aaryan1901/Gigyasa-backend/internal/db"
	"github.com/Aaryan1901/Gigyasa-backend/internal/directory"
	httpx "github.com/Aaryan1901/Gigyasa-backend/internal/http"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	sink := &audit.Store{DB: gdb}
	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	svc := &auth.Service{
		Dir:      &directory.Postgres{DB: gdb},
		JWT:      jwtSvc,
		Audit:    sink,
		Precheck: cfg.RegisterPrecheck,
	}

	r := httpx.NewRouter(cfg, svc, jwtSvc, sink)

	pruner := &audit.Pruner{Sink: sink, Retention: cfg.AuditRetention, Every: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	go pruner.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
