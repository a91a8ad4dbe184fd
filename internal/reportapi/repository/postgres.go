package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"report-portal/internal/report/domain"
)

const (
	listReportsSQL = `SELECT id, product_name, category, amount::text, sale_date, region
FROM sales_reports
ORDER BY id`

	insertReportSQL = `INSERT INTO sales_reports (id, product_name, category, amount, sale_date, region)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
ON CONFLICT (id) DO NOTHING`
)

// PostgresRepository reads the sales_reports table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListReports(ctx context.Context) ([]domain.SalesReport, error) {
	rows, err := r.db.QueryContext(ctx, listReportsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SalesReport
	for rows.Next() {
		var (
			rec    domain.SalesReport
			amount string
			date   time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.ProductName, &rec.Category, &amount, &date, &rec.Region); err != nil {
			return nil, err
		}
		rec.Amount, err = domain.ParseAmount(amount)
		if err != nil {
			return nil, fmt.Errorf("sales_reports id %d: %w", rec.ID, err)
		}
		rec.SaleDate = domain.DateOf(date)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) InsertReports(ctx context.Context, records []domain.SalesReport) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	for _, rec := range records {
		res, err := tx.ExecContext(ctx, insertReportSQL,
			rec.ID, rec.ProductName, rec.Category, rec.Amount.String(), rec.SaleDate, rec.Region)
		if err != nil {
			return 0, fmt.Errorf("insert report %d: %w", rec.ID, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			n += int(affected)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
