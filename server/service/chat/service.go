// Package chat orchestrates one chat turn: fact resolution, the greeting
// short-circuit, prompt assembly, completion and the conversation record.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/hrygo/chatrelay/plugin/ai"
	"github.com/hrygo/chatrelay/plugin/ai/facts"
	"github.com/hrygo/chatrelay/plugin/ai/prompt"
	apperrors "github.com/hrygo/chatrelay/server/internal/errors"
	"github.com/hrygo/chatrelay/server/internal/observability"
	"github.com/hrygo/chatrelay/store"
)

// User-facing messages.
const (
	MsgMissingAPIKey        = "Chave da API da OpenAI não foi configurada"
	MsgConversationNotFound = "Conversa não encontrada"
	MsgCompletionFailed     = "Falha ao gerar resposta"
)

type service struct {
	store     Store
	resolver  *facts.Resolver
	llmConfig *ai.LLMConfig
	llm       ai.LLMService
	metrics   *observability.Metrics
}

// NewService creates the chat service. llm may be nil when no credential is
// configured; Chat then fails with a configuration error.
func NewService(st Store, llmConfig *ai.LLMConfig, llm ai.LLMService, metrics *observability.Metrics) Service {
	if metrics == nil {
		metrics = observability.NewMetrics(0)
	}
	return &service{
		store:     st,
		resolver:  facts.NewResolver(st, facts.NewPhraseExtractor()),
		llmConfig: llmConfig,
		llm:       llm,
		metrics:   metrics,
	}
}

func (s *service) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	s.metrics.RecordRequest()
	reqCtx := observability.FromContextOrNew(ctx, "chat", lo.FromPtr(req).UserID)

	result, err := s.chat(ctx, reqCtx, req)
	if err != nil {
		code := apperrors.GetCodeFromError(err, apperrors.ErrCodeInternal)
		s.metrics.RecordFailure(string(code))
		reqCtx.Error("chat request failed", err,
			slog.String(observability.LogFieldErrorCode, string(code)),
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
		)
		return nil, err
	}

	outcome := observability.OutcomeCompletion
	if result.Greeting {
		outcome = observability.OutcomeGreeting
	}
	s.metrics.RecordOutcome(outcome, reqCtx.Duration())
	reqCtx.Info("chat request completed",
		slog.String(observability.LogFieldOutcome, outcome),
		slog.String(observability.LogFieldConversationID, result.ConversationID),
		slog.Int(observability.LogFieldMessageCount, len(req.Messages)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)
	return result, nil
}

func (s *service) chat(ctx context.Context, reqCtx *observability.RequestContext, req *ChatRequest) (*ChatResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if s.llm == nil || s.llmConfig.Validate() != nil {
		return nil, apperrors.Configuration(MsgMissingAPIKey)
	}

	known := s.resolver.Resolve(ctx, req.UserID, lo.Map(req.Messages, func(m Message, _ int) facts.Message {
		return facts.Message{Role: m.Role, Content: m.Content}
	}))

	assembled := prompt.Assemble(known, lo.Map(req.Messages, func(m Message, _ int) ai.Message {
		return ai.Message{Role: m.Role, Content: m.Content}
	}))

	result := &ChatResult{}
	if reply, ok := prompt.Greeting(req.Messages[len(req.Messages)-1].Content, known.Name); ok {
		result.Response = reply
		result.Greeting = true
	} else {
		reply, err := s.llm.Chat(ctx, assembled)
		if err != nil {
			return nil, apperrors.Upstream(MsgCompletionFailed, err)
		}
		result.Response = reply
	}

	conversation, err := s.store.CreateConversation(ctx, &store.Conversation{
		UserID: req.UserID,
		Messages: lo.Map(assembled, func(m ai.Message, _ int) store.ConversationMessage {
			return store.ConversationMessage{Role: m.Role, Content: m.Content}
		}),
		BotResponse: result.Response,
		CreatedTs:   time.Now().Unix(),
	})
	if err != nil {
		s.metrics.RecordPersistFailure()
		reqCtx.Error("failed to record conversation", err,
			slog.Int(observability.LogFieldMessageCount, len(assembled)),
		)
		return result, nil
	}
	result.ConversationID = conversation.ID
	result.Persisted = true
	return result, nil
}

func (s *service) GetConversation(ctx context.Context, id string) (*store.Conversation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NotFound(MsgConversationNotFound)
	}
	conversation, err := s.store.GetConversation(ctx, &store.FindConversation{ID: &id})
	if err != nil {
		return nil, apperrors.Store("failed to load conversation", err)
	}
	if conversation == nil {
		return nil, apperrors.NotFound(MsgConversationNotFound).WithContext("conversation_id", id)
	}
	return conversation, nil
}

func validateRequest(req *ChatRequest) error {
	if req == nil {
		return apperrors.InvalidArgument("corpo da requisição ausente")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return apperrors.InvalidArgument("user_id é obrigatório")
	}
	if len(req.Messages) == 0 {
		return apperrors.InvalidArgument("messages não pode ser vazio")
	}
	return nil
}
