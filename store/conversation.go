package store

// Message roles as sent by callers and stored in conversations.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is a single message of a stored conversation.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is an append-only record of one chat exchange.
type Conversation struct {
	// ID is the store-native identifier rendered as a string.
	ID          string
	UserID      string
	Messages    []ConversationMessage
	BotResponse string
	CreatedTs   int64
}

type FindConversation struct {
	ID     *string
	UserID *string
	Limit  *int
}
