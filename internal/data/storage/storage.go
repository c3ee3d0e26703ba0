package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/songzhibin97/rugscan/internal/models"

	_ "github.com/lib/pq"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}

	err = s.initTables()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// SaveScan implements data.ScanStorage. The full result is stored as a
// JSON document next to the indexed columns so the serving path never has
// to re-assemble it.
func (s *PostgresStorage) SaveScan(ctx context.Context, symbol, address string, chain models.Chain, result *models.RiskResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := `
        INSERT INTO scan_results (
            symbol, address, chain, score, tier, result, scored_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7
        )
    `

	_, err = s.db.ExecContext(ctx, query,
		symbol,
		address,
		string(chain),
		result.OverallScore,
		string(result.Tier),
		payload,
		result.ScoredAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save scan result: %w", err)
	}

	return nil
}

// LatestScan implements data.ScanStorage. It returns nil without error
// when no result within maxAge exists.
func (s *PostgresStorage) LatestScan(ctx context.Context, address string, chain models.Chain, maxAge time.Duration) (*models.RiskResult, error) {
	query := `
        SELECT result
        FROM scan_results
        WHERE address = $1 AND chain = $2 AND scored_at >= $3
        ORDER BY scored_at DESC
        LIMIT 1
    `

	cutoff := time.Now().UTC().Add(-maxAge)

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, address, string(chain), cutoff).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scan result: %w", err)
	}

	var result models.RiskResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}

	return &result, nil
}

// ScanHistory returns prior scores for a token, newest first, so callers
// can track score drift over time.
func (s *PostgresStorage) ScanHistory(ctx context.Context, address string, chain models.Chain, limit int) ([]models.ScanSummary, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
        SELECT symbol, score, tier, scored_at
        FROM scan_results
        WHERE address = $1 AND chain = $2
        ORDER BY scored_at DESC
        LIMIT $3
    `

	rows, err := s.db.QueryContext(ctx, query, address, string(chain), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan history: %w", err)
	}
	defer rows.Close()

	var result []models.ScanSummary
	for rows.Next() {
		var entry models.ScanSummary
		var tier string
		err := rows.Scan(&entry.Symbol, &entry.Score, &tier, &entry.ScoredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.Tier = models.RiskTier(tier)
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return result, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scan_results (
			id SERIAL PRIMARY KEY,
			symbol VARCHAR(50) NOT NULL,
			address VARCHAR(100),
			chain VARCHAR(20) NOT NULL,
			score INT NOT NULL,
			tier VARCHAR(20) NOT NULL,
			result JSONB NOT NULL,
			scored_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_scan_results_lookup
			ON scan_results (address, chain, scored_at DESC)`,
	}

	for _, query := range queries {
		_, err := s.db.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}
