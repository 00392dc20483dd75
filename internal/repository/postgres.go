package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivanoskov/telefly/internal/model"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS sessions (
	user_id    BIGINT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository подключается к базе и создаёт таблицу sessions, если её нет
func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createSessionsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) GetSession(ctx context.Context, userID int64) (*model.Session, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM sessions WHERE user_id = $1`, userID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", userID, err)
	}
	return decodeSession(userID, data)
}

func (r *PostgresRepository) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (user_id, data, updated_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.pool.Exec(ctx, query, session.UserID, string(data), session.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save session %d: %w", session.UserID, err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
