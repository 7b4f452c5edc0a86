package server

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"

	"github.com/lox/pokernight/internal/session"
)

// EventPublisher broadcasts view updates over NATS so external consumers
// (overlays, recorders) can follow games without polling the API
type EventPublisher struct {
	nc     *nats.Conn
	logger *log.Logger
}

// NewEventPublisher connects to the broker. An empty URL disables
// publishing and returns nil, which all methods tolerate.
func NewEventPublisher(url string, logger *log.Logger) (*EventPublisher, error) {
	if url == "" {
		return nil, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("pokernight"),
		nats.Timeout(10*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	return &EventPublisher{
		nc:     nc,
		logger: logger.WithPrefix("nats"),
	}, nil
}

// Publish sends the view JSON to poker.game.<session>
func (p *EventPublisher) Publish(sessionID string, view session.View) {
	if p == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		p.logger.Error("failed to marshal view", "error", err)
		return
	}

	if err := p.nc.Publish("poker.game."+sessionID, data); err != nil {
		p.logger.Error("failed to publish view", "session", sessionID, "error", err)
	}
}

// Close drains the connection
func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	_ = p.nc.Drain()
}
