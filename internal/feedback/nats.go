package feedback

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ Conn = (*nats.Conn)(nil)

// NewNATS constructs a thin NATS-based publisher.
func NewNATS(log *slog.Logger, nc Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  Conn
}

func (p *natsPublisher) Publish(_ context.Context, rec Record) error {
	rec = stamp(rec)
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(Subject, body); err != nil {
		return err
	}
	p.log.Debug("feedback published", "id", rec.ID, "subject", Subject)
	return nil
}
