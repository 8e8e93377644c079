package userctx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps one JSONB document per user in a single table.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects a pgx pool and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_contexts (
			user_id    TEXT PRIMARY KEY,
			document   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("PostgreSQL context store connected")
	return &PostgresStore{db: pool, logger: logger}, nil
}

// Load fetches the document for userID, falling back to Default().
func (s *PostgresStore) Load(ctx context.Context, userID string) (UserContext, error) {
	var doc []byte
	err := s.db.QueryRow(ctx,
		`SELECT document FROM user_contexts WHERE user_id = $1`, userID,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("%w: load %s: %v", ErrStorage, userID, err)
	}

	var uc UserContext
	if err := json.Unmarshal(doc, &uc); err != nil {
		s.logger.Warn("corrupt context document, using default",
			zap.String("user", userID), zap.Error(err))
		return Default(), nil
	}
	return uc, nil
}

// Save upserts the whole document for userID.
func (s *PostgresStore) Save(ctx context.Context, userID string, uc UserContext) error {
	doc, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("%w: marshal context: %v", ErrStorage, err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO user_contexts (user_id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		userID, doc,
	)
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrStorage, userID, err)
	}
	return nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}
