package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/chatrelay/server/internal/observability"
	"github.com/hrygo/chatrelay/server/service/chat"
)

type APIV1Service struct {
	ChatService chat.Service
	Metrics     *observability.Metrics
}

func NewAPIV1Service(chatService chat.Service, metrics *observability.Metrics) *APIV1Service {
	if metrics == nil {
		metrics = observability.NewMetrics(0)
	}
	return &APIV1Service{
		ChatService: chatService,
		Metrics:     metrics,
	}
}

// RegisterRoutes registers the HTTP API with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	// Any origin, with credentials, mirroring the browser clients of the original deployment.
	corsHandler := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(_ string) (bool, error) {
			return true, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	})
	group := echoServer.Group("", corsHandler, s.requestContextMiddleware)

	group.GET("/", s.GetStatus)
	group.POST("/api/chat", s.Chat)
	group.GET("/api/conversa/:conversa_id", s.GetConversation)
	group.GET("/api/metrics", s.GetMetricsOverview)
}

// requestContextMiddleware attaches a RequestContext carrying the echo request ID.
func (s *APIV1Service) requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = c.Request().Header.Get(echo.HeaderXRequestID)
		}
		reqCtx := observability.NewRequestContextWithID(nil, requestID, c.Path(), "")
		ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
