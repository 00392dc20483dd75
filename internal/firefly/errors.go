package firefly

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError - ответ Firefly III с кодом, отличным от 2xx
type APIError struct {
	StatusCode int
	Reason     string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firefly: %d %s", e.StatusCode, e.Message())
}

// Message возвращает поле message из тела ответа, а если его нет - HTTP reason
func (e *APIError) Message() string {
	if len(e.Body) == 0 {
		return e.Reason
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil || body.Message == "" {
		return e.Reason
	}
	return body.Message
}

// Reason возвращает причину ошибки, пригодную для показа пользователю
func Reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}
