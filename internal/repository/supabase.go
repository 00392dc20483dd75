package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/telefly/internal/model"
)

const sessionsTable = "sessions"

// sessionRow - строка таблицы sessions (user_id bigint primary key, data jsonb, updated_at timestamptz)
type sessionRow struct {
	UserID    int64           `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) GetSession(ctx context.Context, userID int64) (*model.Session, error) {
	data, _, err := r.client.From(sessionsTable).
		Select("user_id,data,updated_at", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", userID, err)
	}

	var rows []sessionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse session %d: %w", userID, err)
	}
	if len(rows) == 0 {
		return model.NewSession(userID), nil
	}
	return decodeSession(userID, rows[0].Data)
}

func (r *SupabaseRepository) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	row := sessionRow{
		UserID:    session.UserID,
		Data:      data,
		UpdatedAt: session.UpdatedAt,
	}
	if _, _, err := r.client.From(sessionsTable).Insert(row, true, "user_id", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to save session %d: %w", session.UserID, err)
	}
	return nil
}

func (r *SupabaseRepository) Close() error {
	return nil
}
