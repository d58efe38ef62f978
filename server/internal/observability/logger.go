package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldUserID is the field name for user ID.
	LogFieldUserID = "user_id"
	// LogFieldEndpoint is the field name for the handling endpoint.
	LogFieldEndpoint = "endpoint"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldMessageCount is the field name for the number of caller messages.
	LogFieldMessageCount = "message_count"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
	// LogFieldOutcome is the field name for how a chat request was answered.
	LogFieldOutcome = "outcome"
	// LogFieldConversationID is the field name for a stored conversation ID.
	LogFieldConversationID = "conversation_id"
)

// RequestContext represents the context for a single request with structured logging.
type RequestContext struct {
	RequestID string
	UserID    string
	Endpoint  string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewRequestContext creates a new request context with a generated request ID.
func NewRequestContext(logger *slog.Logger, endpoint, userID string) *RequestContext {
	return NewRequestContextWithID(logger, "", endpoint, userID)
}

// NewRequestContextWithID creates a new request context with a specific request ID.
// An empty request ID is replaced by a generated one.
func NewRequestContextWithID(logger *slog.Logger, requestID, endpoint, userID string) *RequestContext {
	if requestID == "" {
		requestID = generateRequestID()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestContext{
		RequestID: requestID,
		UserID:    userID,
		Endpoint:  endpoint,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Info logs an info message.
func (r *RequestContext) Info(msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, r.baseAttrsAppended(attrs...)...)
}

// Error logs an error message with the error.
func (r *RequestContext) Error(msg string, err error, attrs ...slog.Attr) {
	allAttrs := append(attrs, slog.String("error", err.Error()))
	r.Logger.LogAttrs(context.Background(), slog.LevelError, msg, r.baseAttrsAppended(allAttrs...)...)
}

// Duration returns the elapsed time since the request started.
func (r *RequestContext) Duration() time.Duration {
	return time.Since(r.StartTime)
}

// DurationMs returns the elapsed time in milliseconds.
func (r *RequestContext) DurationMs() int64 {
	return r.Duration().Milliseconds()
}

func (r *RequestContext) baseAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String(LogFieldRequestID, r.RequestID),
		slog.String(LogFieldUserID, r.UserID),
		slog.String(LogFieldEndpoint, r.Endpoint),
	}
}

func (r *RequestContext) baseAttrsAppended(attrs ...slog.Attr) []slog.Attr {
	return append(r.baseAttrs(), attrs...)
}

// generateRequestID generates a unique request ID using full UUID.
func generateRequestID() string {
	return uuid.New().String()
}

type ctxKey struct{}

// WithRequestContext adds the request context to the context.
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, reqCtx)
}

// FromContext extracts the request context from the context.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	reqCtx, ok := ctx.Value(ctxKey{}).(*RequestContext)
	return reqCtx, ok
}

// FromContextOrNew returns the request context stored in ctx, or a fresh one
// for the given endpoint and user.
func FromContextOrNew(ctx context.Context, endpoint, userID string) *RequestContext {
	if reqCtx, ok := FromContext(ctx); ok {
		if reqCtx.UserID == "" {
			reqCtx.UserID = userID
		}
		return reqCtx
	}
	return NewRequestContext(slog.Default(), endpoint, userID)
}
