package feedback

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"legally/internal/retry"
)

// Subject is the NATS subject feedback records are published on.
const Subject = "legally.feedback"

// Record is one user rating of a served answer. Storage is left to subscribers.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Feedback  string    `json:"feedback"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher hands records to an external collaborator.
type Publisher interface {
	Publish(ctx context.Context, rec Record) error
}

// stamp fills in ID and CreatedAt when unset.
func stamp(rec Record) Record {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec
}

// LogPublisher only logs records; used when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, rec Record) error {
	rec = stamp(rec)
	p.log.Info("feedback received", "id", rec.ID, "rating", rec.Rating, "has_comment", rec.Feedback != "")
	return nil
}

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, rec Record, attempts int, base time.Duration) error {
	rec = stamp(rec)
	return retry.Do(ctx, attempts, base, nil, func(ctx context.Context) error {
		return p.Publish(ctx, rec)
	})
}
