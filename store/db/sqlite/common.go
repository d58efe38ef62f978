package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hrygo/chatrelay/store"
)

// placeholder returns a placeholder for SQLite (uses ?)
func placeholder(_ int) string {
	return "?"
}

func marshalMessages(messages []store.ConversationMessage) (string, error) {
	if messages == nil {
		messages = []store.ConversationMessage{}
	}
	bytes, err := json.Marshal(messages)
	if err != nil {
		return "", fmt.Errorf("failed to marshal messages: %w", err)
	}
	return string(bytes), nil
}

func unmarshalMessages(raw string) ([]store.ConversationMessage, error) {
	messages := []store.ConversationMessage{}
	if raw == "" {
		return messages, nil
	}
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
