package repository

import (
	"encoding/json"
	"fmt"

	"github.com/ivanoskov/telefly/internal/model"
)

func encodeSession(session *model.Session) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session %d: %w", session.UserID, err)
	}
	return data, nil
}

func decodeSession(userID int64, data []byte) (*model.Session, error) {
	session := model.NewSession(userID)
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to decode session %d: %w", userID, err)
	}
	session.UserID = userID
	return session, nil
}
