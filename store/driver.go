package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	Close() error

	// UserProfile model related methods.
	UpsertUserProfile(ctx context.Context, upsert *UpsertUserProfile) (*UserProfile, error)
	// GetUserProfile returns nil without error when the profile does not exist.
	GetUserProfile(ctx context.Context, find *FindUserProfile) (*UserProfile, error)

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	// ListConversations returns conversations newest first.
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
}

// SQLDriver is implemented by drivers backed by database/sql.
// Their schema is bootstrapped from the embedded LATEST.sql of the driver.
type SQLDriver interface {
	Driver

	GetDB() *sql.DB
	IsInitialized(ctx context.Context) (bool, error)
}

// IndexDriver is implemented by document store drivers.
// Collections are created lazily, so bootstrapping only ensures indexes.
type IndexDriver interface {
	Driver

	EnsureIndexes(ctx context.Context) error
}
