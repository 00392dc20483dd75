package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ivanoskov/telefly/internal/model"
)

// FileRepository хранит каждую сессию в отдельном JSON-файле <dir>/<prefix>_<userID>.json
type FileRepository struct {
	dir    string
	prefix string
}

func NewFileRepository(dir, prefix string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create persistence dir: %w", err)
	}
	return &FileRepository{dir: dir, prefix: prefix}, nil
}

func (r *FileRepository) GetSession(ctx context.Context, userID int64) (*model.Session, error) {
	data, err := os.ReadFile(r.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session %d: %w", userID, err)
	}
	return decodeSession(userID, data)
}

// SaveSession пишет во временный файл и переименовывает его, чтобы запись не оборвалась на середине
func (r *FileRepository) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, r.prefix+"_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session %d: %w", session.UserID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync session %d: %w", session.UserID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path(session.UserID)); err != nil {
		return fmt.Errorf("failed to save session %d: %w", session.UserID, err)
	}
	return nil
}

func (r *FileRepository) Close() error {
	return nil
}

func (r *FileRepository) path(userID int64) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%d.json", r.prefix, userID))
}
