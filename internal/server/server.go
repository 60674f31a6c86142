// Package server wires the HTTP surface. Handlers stay thin: request
// decoding, engine calls, response shaping. All triage logic lives in the
// engine and its collaborators.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"assistlink-go/internal/config"
	"assistlink-go/internal/engine"
	"assistlink-go/internal/health"
	"assistlink-go/internal/logger"
)

type Server struct {
	echo   *echo.Echo
	cfg    config.AppConfig
	engine *engine.Engine
	prober *health.Prober
	audio  engine.AudioAnalyzer
}

func New(cfg config.AppConfig, eng *engine.Engine, prober *health.Prober, audio engine.AudioAnalyzer) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger)

	s := &Server{
		echo:   e,
		cfg:    cfg,
		engine: eng,
		prober: prober,
		audio:  audio,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", s.healthCheck)

	conv := api.Group("/conversations")
	conv.POST("/start", s.startConversation)
	conv.POST("/message", s.processMessage)
	conv.POST("/voice", s.processVoice)
	conv.GET("/export", s.exportConversations)
	conv.GET("", s.listConversations)
	conv.GET("/:id", s.getConversation)
	conv.POST("/:id/close", s.closeConversation)

	sent := api.Group("/sentiment")
	sent.POST("/text", s.analyzeTextSentiment)
	sent.POST("/analyze", s.analyzeAudioSentiment)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.New().WithRequest(c.Request())
		start := time.Now()
		err := next(c)
		log.WithField("status", c.Response().Status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
		return err
	}
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the server until an interrupt, then shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
