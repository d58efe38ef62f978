package store

import (
	"context"

	"github.com/hrygo/chatrelay/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) UpsertUserProfile(ctx context.Context, upsert *UpsertUserProfile) (*UserProfile, error) {
	return s.driver.UpsertUserProfile(ctx, upsert)
}

func (s *Store) GetUserProfile(ctx context.Context, find *FindUserProfile) (*UserProfile, error) {
	return s.driver.GetUserProfile(ctx, find)
}

func (s *Store) CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error) {
	return s.driver.CreateConversation(ctx, create)
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

// GetConversation returns the first conversation matching find, or nil when there is none.
func (s *Store) GetConversation(ctx context.Context, find *FindConversation) (*Conversation, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.ListConversations(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetLatestConversation returns the most recently created conversation of a user.
func (s *Store) GetLatestConversation(ctx context.Context, userID string) (*Conversation, error) {
	return s.GetConversation(ctx, &FindConversation{UserID: &userID})
}
