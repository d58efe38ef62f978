package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hrygo/chatrelay/store"
)

// placeholder returns a positional placeholder for PostgreSQL ($1, $2, ...).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func placeholders(n int) string {
	list := []string{}
	for i := 0; i < n; i++ {
		list = append(list, placeholder(i+1))
	}
	return strings.Join(list, ", ")
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

func unmarshalMessages(raw []byte) ([]store.ConversationMessage, error) {
	messages := []store.ConversationMessage{}
	if len(raw) == 0 {
		return messages, nil
	}
	if err := json.Unmarshal(raw, &messages); err != nil {
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
