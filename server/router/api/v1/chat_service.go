package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/chatrelay/server/internal/errors"
	"github.com/hrygo/chatrelay/server/service/chat"
	"github.com/hrygo/chatrelay/store"
)

// StatusMessage is reported by the liveness endpoint.
const StatusMessage = "API do Bot Chat está online"

// StatusResponse is the body of GET /.
type StatusResponse struct {
	Status string `json:"Status"`
}

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ConversationResponse is a stored conversation as returned to callers.
type ConversationResponse struct {
	ID          string                      `json:"_id"`
	UserID      string                      `json:"user_id"`
	Messages    []store.ConversationMessage `json:"messages"`
	BotResponse string                      `json:"bot_response"`
}

// GetStatus reports that the service is up.
// GET /
func (*APIV1Service) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: StatusMessage})
}

// Chat answers one chat turn.
// POST /api/chat
func (s *APIV1Service) Chat(c echo.Context) error {
	var req chat.ChatRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return writeError(c, apperrors.InvalidArgument("corpo da requisição inválido"))
	}

	result, err := s.ChatService.Chat(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ChatResponse{Response: result.Response})
}

// GetConversation returns a stored conversation by ID.
// GET /api/conversa/:conversa_id
func (s *APIV1Service) GetConversation(c echo.Context) error {
	conversation, err := s.ChatService.GetConversation(c.Request().Context(), c.Param("conversa_id"))
	if err != nil {
		return writeError(c, err)
	}

	messages := conversation.Messages
	if messages == nil {
		messages = []store.ConversationMessage{}
	}
	return c.JSON(http.StatusOK, ConversationResponse{
		ID:          conversation.ID,
		UserID:      conversation.UserID,
		Messages:    messages,
		BotResponse: conversation.BotResponse,
	})
}
