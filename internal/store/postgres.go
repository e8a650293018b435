package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/factspark/factspark/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS claims (
	id BIGSERIAL PRIMARY KEY,
	claim_text TEXT NOT NULL,
	analysis_text TEXT,
	submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore implements ClaimStore backed by Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database, verifies the connection, and
// ensures the claims table exists.
func NewPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// InsertClaim creates a new claim row and returns the store-assigned id
func (s *PostgresStore) InsertClaim(ctx context.Context, claimText, analysisText string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO claims (claim_text, analysis_text) VALUES ($1, $2) RETURNING id`,
		claimText, analysisText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert claim: %w", err)
	}
	return id, nil
}

// GetClaim fetches a single claim by id
func (s *PostgresStore) GetClaim(ctx context.Context, id int64) (*model.ClaimRecord, error) {
	var rec model.ClaimRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, claim_text, COALESCE(analysis_text, ''), submitted_at FROM claims WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Text, &rec.Analysis, &rec.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get claim %d: %w", id, err)
	}
	return &rec, nil
}

// ListRecent returns up to limit claims, newest first
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]model.ClaimRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, claim_text, COALESCE(analysis_text, ''), submitted_at
		 FROM claims ORDER BY submitted_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var records []model.ClaimRecord
	for rows.Next() {
		var rec model.ClaimRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Analysis, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}

	return records, nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

var _ ClaimStore = (*PostgresStore)(nil)
