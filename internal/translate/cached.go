package translate

import (
	"context"
	"log/slog"

	"legally/internal/cache"
)

// Cached memoizes successful translations of whole texts.
type Cached struct {
	next  Translator
	store cache.Cache
	log   *slog.Logger
}

// NewCached wraps next with store. Cache errors are logged and ignored.
func NewCached(next Translator, store cache.Cache, log *slog.Logger) *Cached {
	return &Cached{next: next, store: store, log: log}
}

func (c *Cached) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := source + ":" + target + ":" + text
	if out, ok, err := c.store.Get(ctx, key); err != nil {
		c.log.Warn("translation cache read failed", "err", err)
	} else if ok {
		return out, nil
	}

	out, err := c.next.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}
	if err := c.store.Put(ctx, key, out); err != nil {
		c.log.Warn("translation cache write failed", "err", err)
	}
	return out, nil
}
