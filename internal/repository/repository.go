package repository

import (
	"context"
	"fmt"

	"github.com/ivanoskov/telefly/internal/config"
	"github.com/ivanoskov/telefly/internal/model"
)

// SessionRepository хранит сессии пользователей между перезапусками бота
type SessionRepository interface {
	// GetSession возвращает сессию пользователя или новую пустую, если её ещё нет
	GetSession(ctx context.Context, userID int64) (*model.Session, error)
	// SaveSession синхронно сохраняет сессию целиком
	SaveSession(ctx context.Context, session *model.Session) error
	Close() error
}

// Open создаёт хранилище, выбранное в конфигурации
func Open(ctx context.Context, cfg *config.Config) (SessionRepository, error) {
	switch cfg.SessionBackend {
	case config.BackendFile:
		return NewFileRepository(cfg.PersistencePath, cfg.PersistencePrefix)
	case config.BackendSupabase:
		return NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	case config.BackendPostgres:
		return NewPostgresRepository(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.SessionBackend)
	}
}
