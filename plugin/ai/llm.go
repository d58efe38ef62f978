package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// FallbackReply is returned in place of an empty generated text.
const FallbackReply = "Desculpe, não consegui gerar uma resposta no momento."

// ErrUpstream marks failures of the completion API call.
var ErrUpstream = errors.New("completion request failed")

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMService is the LLM service interface.
type LLMService interface {
	// Chat performs synchronous chat.
	Chat(ctx context.Context, messages []Message) (string, error)
}

type llmService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewLLMService creates a new LLMService.
func NewLLMService(cfg *LLMConfig) (LLMService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider != "" && cfg.Provider != DefaultProvider {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &llmService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (s *llmService) Chat(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    convertMessages(messages),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}

	// Only a blank reply is replaced; any other text is returned as generated.
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return FallbackReply, nil
	}
	return content, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		// Roles are forwarded verbatim; only a missing role defaults to user.
		role := m.Role
		if role == "" {
			role = openai.ChatMessageRoleUser
		}
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		}
	}
	return llmMessages
}

// Helper for creating system prompts
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// Helper for creating user messages
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
