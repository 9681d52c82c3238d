package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// EnsureSchema creates the report archive table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rubric_reports (
			report_id       UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name            TEXT NOT NULL DEFAULT '',
			source          TEXT NOT NULL DEFAULT '',
			score           DOUBLE PRECISION NOT NULL,
			threshold_score DOUBLE PRECISION NOT NULL,
			objective_score DOUBLE PRECISION NOT NULL,
			gated           BOOLEAN NOT NULL DEFAULT FALSE,
			failed_buckets  TEXT[] NOT NULL DEFAULT '{}',
			report          JSONB NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS rubric_reports_created_at_idx ON rubric_reports (created_at DESC);`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const reportColumns = `report_id, name, source,
	score, threshold_score, objective_score, gated, failed_buckets,
	report, created_at`

func (s *PostgresStore) SaveReport(ctx context.Context, rec *ReportRecord) error {
	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	failed := rec.FailedBuckets
	if failed == nil {
		failed = []string{}
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO rubric_reports (name, source,
			score, threshold_score, objective_score, gated, failed_buckets, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING report_id, created_at`,
		rec.Name, rec.Source,
		rec.Score, rec.ThresholdScore, rec.ObjectiveScore, rec.Gated, failed, reportJSON,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *PostgresStore) GetReport(ctx context.Context, id uuid.UUID) (*ReportRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+reportColumns+`
		FROM rubric_reports WHERE report_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs, err := scanReports(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]*ReportRecord, error) {
	query := `SELECT ` + reportColumns + ` FROM rubric_reports WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Name != "" {
		n++
		query += fmt.Sprintf(" AND name = $%d", n)
		args = append(args, filter.Name)
	}
	if filter.Source != "" {
		n++
		query += fmt.Sprintf(" AND source = $%d", n)
		args = append(args, filter.Source)
	}
	if filter.Gated != nil {
		n++
		query += fmt.Sprintf(" AND gated = $%d", n)
		args = append(args, *filter.Gated)
	}

	query += " ORDER BY created_at DESC, report_id"

	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReports(rows)
}

func scanReports(rows pgx.Rows) ([]*ReportRecord, error) {
	var recs []*ReportRecord
	for rows.Next() {
		r := &ReportRecord{}
		var reportJSON []byte
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Source,
			&r.Score, &r.ThresholdScore, &r.ObjectiveScore, &r.Gated, &r.FailedBuckets,
			&reportJSON, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if reportJSON != nil {
			if err := json.Unmarshal(reportJSON, &r.Report); err != nil {
				return nil, fmt.Errorf("decode report %s: %w", r.ID, err)
			}
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
