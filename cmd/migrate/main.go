// Migrate applies the embedded sales_reports schema; use go run ./cmd/migrate -direction up|down.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"report-portal/internal/config"
	"report-portal/internal/db/migrate"
	"report-portal/internal/logging"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	dir, err := migrate.ParseDirection(*direction)
	if err != nil {
		log.Fatal(err)
	}
	version, err := migrate.Run(cfg.DatabaseURL, dir, log)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.WithFields(logrus.Fields{"direction": dir, "version": version}).Info("migrations applied")
}
