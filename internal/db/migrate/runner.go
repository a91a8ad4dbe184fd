// Package migrate applies the embedded sales_reports schema with golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"report-portal/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// Direction selects which way Run migrates.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ErrNoChange is golang-migrate's "already at target" sentinel. Run swallows it.
var ErrNoChange = migrate.ErrNoChange

// ParseDirection accepts exactly "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("direction must be up or down, got %q", s)
}

// Run migrates the database at dsn in the given direction and returns the
// schema version afterwards (0 when nothing is applied).
func Run(dsn string, direction Direction, log logrus.FieldLogger) (uint, error) {
	if dsn == "" {
		return 0, db.ErrEmptyDSN
	}
	if _, err := ParseDirection(string(direction)); err != nil {
		return 0, err
	}

	src, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()
	if log != nil {
		m.Log = logAdapter{log: log}
	}

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migrate version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migrate: schema version %d is dirty", version)
	}
	return version, nil
}

// logAdapter satisfies migrate.Logger.
type logAdapter struct {
	log logrus.FieldLogger
}

func (a logAdapter) Printf(format string, v ...interface{}) {
	a.log.WithField("component", "migrate").Infof(format, v...)
}

func (a logAdapter) Verbose() bool { return false }
