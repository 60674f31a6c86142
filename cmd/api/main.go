package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"assistlink-go/internal/config"
	"assistlink-go/internal/engine"
	"assistlink-go/internal/health"
	"assistlink-go/internal/logger"
	"assistlink-go/internal/sentiment"
	"assistlink-go/internal/server"
	"assistlink-go/internal/store"
	"assistlink-go/internal/ticketing"
	"assistlink-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New().WithField("service", "assistlink-go")
	log.Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	prober := health.NewProber(cfg.Deepgram, cfg.Trello)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	prober.ProbeAtStartup(ctx)
	cancel()

	conversations := store.New()
	transcriber := transcription.NewClient(cfg.Deepgram)
	audioSentiment := sentiment.NewAnalyzer(cfg.Deepgram)
	tickets := ticketing.NewClient(cfg.Trello)
	eng := engine.New(conversations, transcriber, audioSentiment, tickets)

	srv := server.New(cfg.App, eng, prober, audioSentiment)
	log.WithField("port", cfg.App.Port).Info("listening")
	if err := srv.Start(); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
}
