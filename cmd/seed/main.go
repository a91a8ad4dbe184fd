// Seed loads the demo sales records into the report API database. Idempotent: ids already
// present are skipped.
package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"report-portal/internal/config"
	"report-portal/internal/db"
	"report-portal/internal/logging"
	"report-portal/internal/reportapi/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	records := repository.DemoReports()
	n, err := repository.NewPostgresRepository(conn).InsertReports(ctx, records)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if n == 0 {
		log.Info("seed already applied; nothing inserted")
		return
	}
	log.WithFields(logrus.Fields{"inserted": n, "total": len(records)}).Info("seed completed")
}
