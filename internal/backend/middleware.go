package backend

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"legally/internal/retry"
)

type retrying struct {
	next     Client
	attempts int
	base     time.Duration
	log      *slog.Logger
}

// WithRetry retries transient failures (network errors, 502/503/504) up to
// attempts total calls with exponential backoff.
func WithRetry(next Client, attempts int, base time.Duration, log *slog.Logger) Client {
	if attempts <= 1 {
		return next
	}
	return &retrying{next: next, attempts: attempts, base: base, log: log}
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	attempt := 0
	err := retry.Do(ctx, r.attempts, r.base, IsTransient, func(ctx context.Context) error {
		attempt++
		out, err := r.next.Generate(ctx, prompt)
		if err != nil {
			if IsTransient(err) && attempt < r.attempts {
				r.log.Warn("backend call failed, retrying", "provider", r.Name(), "attempt", attempt, "err", err)
			}
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		if ctx.Err() != nil && KindOf(err) == KindUnknown {
			// ctx ended while waiting between attempts
			return "", transportError(ctx, r.Name(), err)
		}
		return "", err
	}
	return text, nil
}

// CallBudget bounds a WithRetry(WithTimeout(...)) chain: every attempt at its
// full timeout plus the backoff waits between them.
func CallBudget(attempts int, timeout, base time.Duration) time.Duration {
	attempts = max(attempts, 1)
	budget := timeout * time.Duration(attempts)
	for i := 0; i < attempts-1; i++ {
		budget += retry.ExponentialBackoff(i, base)
	}
	return budget
}

type timed struct {
	next    Client
	timeout time.Duration
}

// WithTimeout bounds each call to next. Place it inside WithRetry so every
// attempt gets the full timeout.
func WithTimeout(next Client, timeout time.Duration) Client {
	if timeout <= 0 {
		return next
	}
	return &timed{next: next, timeout: timeout}
}

func (t *timed) Name() string { return t.next.Name() }

func (t *timed) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	text, err := t.next.Generate(callCtx, prompt)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && KindOf(err) != KindTimeout {
		return "", &Error{Provider: t.Name(), Kind: KindTimeout, Err: err}
	}
	return text, err
}

type rateLimited struct {
	next    Client
	limiter *rate.Limiter
}

// WithRateLimit waits on limiter before each call. A nil limiter returns next unchanged.
func WithRateLimit(next Client, limiter *rate.Limiter) Client {
	if limiter == nil {
		return next
	}
	return &rateLimited{next: next, limiter: limiter}
}

func (r *rateLimited) Name() string { return r.next.Name() }

func (r *rateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// the wait alone would overrun the deadline
			return "", &Error{Provider: r.Name(), Kind: KindTimeout, Err: err}
		}
		return "", transportError(ctx, r.Name(), err)
	}
	return r.next.Generate(ctx, prompt)
}
