// Reportapi serves GET /api/report, the sales records the portal syncs from.
// With DATABASE_URL set the records come from Postgres (run cmd/migrate and cmd/seed first);
// otherwise the seven demo records are served from memory.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"report-portal/internal/config"
	"report-portal/internal/db"
	"report-portal/internal/logging"
	"report-portal/internal/reportapi/handler"
	"report-portal/internal/reportapi/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var repo repository.Repository
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer conn.Close()
		repo = repository.NewPostgresRepository(conn)
		log.Info("report api: serving records from postgres")
	} else {
		repo = repository.NewMemoryRepository(repository.DemoReports()...)
		log.Info("report api: DATABASE_URL not set; serving in-memory demo records")
	}

	srv := &http.Server{
		Addr:              cfg.ReportAPIAddr,
		Handler:           handler.NewRouter(repo, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.ReportAPIAddr).Info("report api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("report api shutdown")
	}
	log.Info("report api stopped")
}
