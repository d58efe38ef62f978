package chat

import (
	"context"

	"github.com/hrygo/chatrelay/plugin/ai/facts"
	"github.com/hrygo/chatrelay/store"
)

// Service defines the chat relay business logic used by the HTTP API.
type Service interface {
	// Chat answers one chat turn. The reply is either the personalized
	// greeting or a model completion; the exchange is recorded either way.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// GetConversation returns a stored conversation by its external ID.
	GetConversation(ctx context.Context, id string) (*store.Conversation, error)
}

// Store is the interface for store operations needed by the chat service.
type Store interface {
	facts.Store
	CreateConversation(ctx context.Context, create *store.Conversation) (*store.Conversation, error)
	GetConversation(ctx context.Context, find *store.FindConversation) (*store.Conversation, error)
}

// Message is one message of a chat request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents one chat turn sent by a caller.
type ChatRequest struct {
	UserID   string    `json:"user_id"`
	Messages []Message `json:"messages"`
}

// ChatResult represents the outcome of a chat turn.
type ChatResult struct {
	Response string
	// Greeting is true when the reply was produced without a completion call.
	Greeting bool
	// ConversationID is empty when the exchange could not be recorded.
	ConversationID string
	Persisted      bool
}
