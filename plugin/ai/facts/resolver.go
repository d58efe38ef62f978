package facts

import (
	"context"
	"log/slog"

	"github.com/hrygo/chatrelay/store"
)

// Message is the minimal view of a chat message the resolver scans.
type Message struct {
	Role    string
	Content string
}

// Store is the subset of store operations the resolver needs.
type Store interface {
	GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error)
	UpsertUserProfile(ctx context.Context, upsert *store.UpsertUserProfile) (*store.UserProfile, error)
	GetLatestConversation(ctx context.Context, userID string) (*store.Conversation, error)
}

// Resolver determines the facts for one chat turn.
//
// Per field the first non-empty source wins, in order: the user profile, the
// system messages of the user's latest conversation, then the current request's
// user messages. Request hits override earlier sources and are written back.
type Resolver struct {
	store     Store
	extractor Extractor
}

// NewResolver creates a resolver. A nil extractor selects PhraseExtractor.
func NewResolver(s Store, extractor Extractor) *Resolver {
	if extractor == nil {
		extractor = NewPhraseExtractor()
	}
	return &Resolver{store: s, extractor: extractor}
}

// Resolve returns the facts for userID given the request messages. Store
// failures never fail the turn: reads degrade to no facts and failed writes
// are logged while the freshly stated fact is still used.
func (r *Resolver) Resolve(ctx context.Context, userID string, messages []Message) Facts {
	known := r.fromProfile(ctx, userID)
	if !known.Complete() {
		known = known.Merge(r.fromLatestConversation(ctx, userID))
	}

	for _, msg := range messages {
		if msg.Role != store.RoleUser {
			continue
		}
		stated := r.extractor.FromUserMessage(msg.Content)
		if stated.Name != "" {
			known.Name = stated.Name
			r.remember(ctx, &store.UpsertUserProfile{UserID: userID, Name: &stated.Name})
		}
		if stated.Preferences != "" {
			known.Preferences = stated.Preferences
			r.remember(ctx, &store.UpsertUserProfile{UserID: userID, Preferences: &stated.Preferences})
		}
	}
	return known
}

func (r *Resolver) fromProfile(ctx context.Context, userID string) Facts {
	userProfile, err := r.store.GetUserProfile(ctx, &store.FindUserProfile{UserID: userID})
	if err != nil {
		slog.Warn("failed to load user profile", "user_id", userID, "error", err)
		return Facts{}
	}
	if userProfile == nil {
		return Facts{}
	}
	return Facts{Name: userProfile.Name, Preferences: userProfile.Preferences}
}

func (r *Resolver) fromLatestConversation(ctx context.Context, userID string) Facts {
	conversation, err := r.store.GetLatestConversation(ctx, userID)
	if err != nil {
		slog.Warn("failed to load latest conversation", "user_id", userID, "error", err)
		return Facts{}
	}
	if conversation == nil {
		return Facts{}
	}

	var found Facts
	for _, msg := range conversation.Messages {
		if msg.Role != store.RoleSystem {
			continue
		}
		found = found.Merge(r.extractor.FromInstruction(msg.Content))
		if found.Complete() {
			break
		}
	}
	return found
}

func (r *Resolver) remember(ctx context.Context, upsert *store.UpsertUserProfile) {
	if _, err := r.store.UpsertUserProfile(ctx, upsert); err != nil {
		slog.Error("failed to save user fact", "user_id", upsert.UserID, "error", err)
	}
}
