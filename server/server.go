// Package server wires the HTTP API onto an echo server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/chatrelay/internal/profile"
	"github.com/hrygo/chatrelay/plugin/ai"
	apiv1 "github.com/hrygo/chatrelay/server/router/api/v1"
	"github.com/hrygo/chatrelay/server/internal/observability"
	"github.com/hrygo/chatrelay/server/service/chat"
	"github.com/hrygo/chatrelay/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Store:   store,
		Profile: profile,
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.RequestID())
	echoServer.Use(middleware.Recover())
	s.echoServer = echoServer

	llmConfig := ai.NewLLMConfigFromProfile(profile)
	var llmService ai.LLMService
	if err := llmConfig.Validate(); err == nil {
		llmService, err = ai.NewLLMService(llmConfig)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create completion client")
		}
	} else {
		slog.Warn("completion API key is not configured, chat requests will fail until it is set")
	}

	metrics := observability.NewMetrics(0)
	chatService := chat.NewService(store, llmConfig, llmService, metrics)
	apiV1Service := apiv1.NewAPIV1Service(chatService, metrics)
	apiV1Service.RegisterRoutes(echoServer)

	return s, nil
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("chat relay started", "address", address, "mode", s.Profile.Mode, "driver", s.Profile.Driver, "version", s.Profile.Version)
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("server shutting down")
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
	slog.Info("server stopped properly")
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}
