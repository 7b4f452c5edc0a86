// Package server wires the poker engine and leaderboard behind a REST and
// websocket surface, with configuration, logging and optional NATS fanout.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokernight/internal/leaderboard"
	"github.com/lox/pokernight/internal/session"
)

// Server hosts the HTTP API and the websocket watch hub
type Server struct {
	cfg       *Config
	logger    *log.Logger
	registry  *session.Registry
	store     *leaderboard.MemoryStore
	hub       *Hub
	publisher *EventPublisher
	http      *http.Server
}

// New builds a fully wired server from configuration
func New(cfg *Config, logger *log.Logger) (*Server, error) {
	registry := session.NewRegistry(session.Config{
		AllowedPlayers: cfg.Game.AllowedPlayers,
		StartingChips:  cfg.Game.StartingChips,
		MaxPlayers:     cfg.Game.MaxPlayers,
		SmallBlind:     cfg.Game.SmallBlind,
		BigBlind:       cfg.Game.BigBlind,
	}, logger)

	store := leaderboard.NewMemoryStore()
	store.Seed(cfg.Game.AllowedPlayers)

	hub := NewHub(logger)

	publisher, err := NewEventPublisher(cfg.Server.NATSURL, logger)
	if err != nil {
		return nil, err
	}

	api := NewAPI(registry, store, logger, hub, publisher)
	router := api.Router()
	router.GET("/ws", hub.HandleWatch)

	return &Server{
		cfg:       cfg,
		logger:    logger.WithPrefix("server"),
		registry:  registry,
		store:     store,
		hub:       hub,
		publisher: publisher,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: router,
		},
	}, nil
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.Addr())
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.hub.Close()
		s.publisher.Close()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
