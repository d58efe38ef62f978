package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/chatrelay/store"
)

func (d *DB) CreateConversation(ctx context.Context, create *store.Conversation) (*store.Conversation, error) {
	messages, err := marshalMessages(create.Messages)
	if err != nil {
		return nil, err
	}
	if create.ID == "" {
		create.ID = shortuuid.New()
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}

	fields := []string{"uid", "user_id", "messages", "bot_response", "created_ts"}
	args := []any{create.ID, create.UserID, messages, create.BotResponse, create.CreatedTs}
	stmt := `INSERT INTO conversation (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return create, nil
}

func (d *DB) ListConversations(ctx context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *find.UserID)
	}

	query := `SELECT uid, user_id, messages, bot_response, created_ts FROM conversation WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id DESC`
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	list := []*store.Conversation{}
	for rows.Next() {
		var rawMessages []byte
		conversation := &store.Conversation{}
		if err := rows.Scan(&conversation.ID, &conversation.UserID, &rawMessages, &conversation.BotResponse, &conversation.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		if conversation.Messages, err = unmarshalMessages(rawMessages); err != nil {
			return nil, err
		}
		list = append(list, conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}
	return list, nil
}
