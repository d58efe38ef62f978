package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hrygo/chatrelay/store"
)

func (d *DB) UpsertUserProfile(ctx context.Context, upsert *store.UpsertUserProfile) (*store.UserProfile, error) {
	now := time.Now().Unix()

	stmt := `INSERT INTO user_profile (user_id, name, preferences, created_ts, updated_ts)
		VALUES (` + placeholders(5) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, user_profile.name),
			preferences = COALESCE(EXCLUDED.preferences, user_profile.preferences),
			updated_ts = EXCLUDED.updated_ts
		RETURNING user_id, name, preferences, created_ts, updated_ts`

	result, err := scanUserProfile(d.db.QueryRowContext(ctx, stmt,
		upsert.UserID,
		nullableString(upsert.Name),
		nullableString(upsert.Preferences),
		now,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user_profile: %w", err)
	}
	return result, nil
}

func (d *DB) GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error) {
	if find.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `SELECT user_id, name, preferences, created_ts, updated_ts FROM user_profile WHERE user_id = ` + placeholder(1)
	result, err := scanUserProfile(d.db.QueryRowContext(ctx, query, find.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found, return nil without error
		}
		return nil, fmt.Errorf("failed to get user_profile: %w", err)
	}
	return result, nil
}

func scanUserProfile(row *sql.Row) (*store.UserProfile, error) {
	var name, preferences sql.NullString
	result := &store.UserProfile{}
	if err := row.Scan(&result.UserID, &name, &preferences, &result.CreatedTs, &result.UpdatedTs); err != nil {
		return nil, err
	}
	result.Name = name.String
	result.Preferences = preferences.String
	return result, nil
}
