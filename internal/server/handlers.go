package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"assistlink-go/internal/engine"
	"assistlink-go/internal/export"
	"assistlink-go/internal/sentiment"
	"assistlink-go/internal/types"
)

const transcriptionAdvisory = "Could not transcribe audio. Please try again or type your message."

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"service":      s.cfg.Title,
		"integrations": s.prober.ConfigStatus(),
	})
}

func (s *Server) startConversation(c echo.Context) error {
	conv := s.engine.Start()
	return c.JSON(http.StatusOK, conv)
}

func (s *Server) processMessage(c echo.Context) error {
	var req types.TextQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := s.engine.ProcessMessage(c.Request().Context(), req.ConversationID, req.Message)
	if errors.Is(err, engine.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) processVoice(c echo.Context) error {
	convID := c.QueryParam("conversation_id")
	if convID == "" {
		convID = c.FormValue("conversation_id")
	}

	audio, err := readAudioPart(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing audio upload")
	}

	res, err := s.engine.ProcessVoice(c.Request().Context(), convID, audio)
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return notFound(c)
	case errors.Is(err, engine.ErrEmptyTranscript):
		return c.JSON(http.StatusOK, map[string]string{"error": transcriptionAdvisory})
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) closeConversation(c echo.Context) error {
	conv, err := s.engine.Close(c.Request().Context(), c.Param("id"))
	if errors.Is(err, engine.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conv)
}

func (s *Server) listConversations(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.List())
}

func (s *Server) getConversation(c echo.Context) error {
	conv, ok := s.engine.Get(c.Param("id"))
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, conv)
}

func (s *Server) exportConversations(c echo.Context) error {
	// Build the workbook before touching the response so a failure can
	// still surface as an error status instead of a truncated 200.
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, s.engine.List()); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="conversations.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) analyzeTextSentiment(c echo.Context) error {
	var req types.TextQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, sentiment.AnalyzeText(req.Message))
}

func (s *Server) analyzeAudioSentiment(c echo.Context) error {
	audio, err := readAudioPart(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing audio upload")
	}
	return c.JSON(http.StatusOK, s.audio.AnalyzeAudio(c.Request().Context(), audio))
}

func readAudioPart(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("audio")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"detail": "Conversation not found"})
}
