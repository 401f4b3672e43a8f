// Package advice runs the legal-query pipeline: validation, emergency
// classification, cached backend dispatch, translation and formatting.
package advice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"legally/internal/backend"
	"legally/internal/cache"
	"legally/internal/emergency"
	"legally/internal/translate"
)

// ErrEmptyQuery is returned by Validate for blank input.
var ErrEmptyQuery = errors.New("advice: empty query")

// Options tunes the pipeline.
type Options struct {
	Jurisdiction string
	SourceLang   string // language the backend answers in
	DisplayLang  string // language shown to the user
	Translate    bool
	Timeout      time.Duration // overall bound on the backend call, retries included
}

// Result is the outcome of one query. Text is always displayable.
type Result struct {
	Text      string   `json:"advice"`
	Emergency bool     `json:"emergency"`
	Matched   []string `json:"matched,omitempty"`
	Cached    bool     `json:"cached"`
	Failed    bool     `json:"failed"`
}

// Processor is safe for concurrent use. Concurrent misses for the same
// normalized query share one backend call.
type Processor struct {
	backend    backend.Client
	translator translate.Translator
	classifier *emergency.Classifier
	cache      cache.Cache
	msgs       Messages
	opts       Options
	log        *slog.Logger
	flight     singleflight.Group
}

// New wires a processor. translator may be nil when opts.Translate is false.
func New(b backend.Client, tr translate.Translator, cl *emergency.Classifier, c cache.Cache, opts Options, log *slog.Logger) *Processor {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if tr == nil {
		opts.Translate = false
	}
	return &Processor{
		backend:    b,
		translator: tr,
		classifier: cl,
		cache:      c,
		msgs:       MessagesFor(opts.DisplayLang),
		opts:       opts,
		log:        log,
	}
}

// Validate trims query and rejects blank input.
func Validate(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", ErrEmptyQuery
	}
	return trimmed, nil
}

// Process answers query with a formatted, displayable string.
func (p *Processor) Process(ctx context.Context, query string) string {
	return p.Answer(ctx, query).Text
}

// Answer runs the pipeline and reports how the text was produced.
func (p *Processor) Answer(ctx context.Context, query string) Result {
	start := time.Now()
	trimmed, err := Validate(query)
	if err != nil {
		return Result{Text: p.msgs.errorLine(p.msgs.EmptyQuery), Failed: true}
	}

	verdict := p.classifier.Classify(trimmed)
	key := NormalizeKey(trimmed)

	out, err := p.resolve(ctx, key, trimmed)
	res := Result{Emergency: verdict.Emergency, Matched: verdict.Matched, Cached: out.cached}
	switch {
	case err != nil:
		res.Failed = true
		res.Text = p.withNotice(verdict, p.failureLine(err))
		p.log.Warn("advice failed", "err", err, "kind", backend.KindOf(err).String(),
			"emergency", verdict.Emergency, "duration_ms", time.Since(start).Milliseconds())
	case !out.cacheable:
		res.Failed = true
		res.Text = p.assemble(verdict, out.body)
	default:
		res.Text = p.assemble(verdict, out.body)
	}
	if err == nil {
		p.log.Info("advice served", "cached", res.Cached, "failed", res.Failed,
			"emergency", verdict.Emergency, "query_len", len(trimmed), "duration_ms", time.Since(start).Milliseconds())
	}
	return res
}

type outcome struct {
	body      string
	cached    bool
	cacheable bool
}

// resolve serves key from cache or generates it, once per key at a time.
func (p *Processor) resolve(ctx context.Context, key, query string) (outcome, error) {
	if body, ok := p.lookup(ctx, key); ok {
		return outcome{body: body, cached: true, cacheable: true}, nil
	}

	// A flight led by a caller that went away fails with KindCanceled;
	// callers still waiting get one more chance with their own context.
	for attempt := 0; ; attempt++ {
		ch := p.flight.DoChan(key, func() (any, error) {
			if body, ok := p.lookup(ctx, key); ok {
				return outcome{body: body, cached: true, cacheable: true}, nil
			}
			out, err := p.generate(ctx, query)
			if err != nil {
				return outcome{}, err
			}
			if out.cacheable {
				if err := p.cache.Put(ctx, key, out.body); err != nil {
					p.log.Warn("cache write failed", "err", err)
				}
			}
			return out, nil
		})

		select {
		case <-ctx.Done():
			return outcome{}, &backend.Error{Provider: p.backend.Name(), Kind: ctxKind(ctx), Err: ctx.Err()}
		case r := <-ch:
			if r.Err != nil {
				if r.Shared && attempt == 0 && backend.KindOf(r.Err) == backend.KindCanceled && ctx.Err() == nil {
					continue
				}
				return outcome{}, r.Err
			}
			return r.Val.(outcome), nil
		}
	}
}

func (p *Processor) lookup(ctx context.Context, key string) (string, bool) {
	body, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.Warn("cache read failed", "err", err)
		return "", false
	}
	return body, ok
}

// generate calls the backend and translates its answer. Backend failures are
// returned as errors; translation failures produce a non-cacheable error body.
func (p *Processor) generate(ctx context.Context, query string) (outcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	text, err := p.backend.Generate(callCtx, backend.FormatPrompt(p.opts.Jurisdiction, query))
	cancel()
	if err != nil {
		return outcome{}, err
	}
	if !p.opts.Translate {
		return outcome{body: text, cacheable: true}, nil
	}

	translated, err := p.translator.Translate(ctx, text, p.opts.SourceLang, p.opts.DisplayLang)
	if err != nil {
		p.log.Warn("translation failed", "err", err, "empty_input", errors.Is(err, translate.ErrEmptyInput))
		return outcome{body: p.msgs.errorLine(p.msgs.TranslationFailed)}, nil
	}
	return outcome{body: translated, cacheable: true}, nil
}

func (p *Processor) failureLine(err error) string {
	if errors.Is(err, backend.ErrCredentialMissing) {
		return p.msgs.errorLine(p.msgs.CredentialMissing)
	}
	return p.msgs.errorLine(p.msgs.BackendFailure)
}

// assemble builds the final message: [notice] header, body, disclaimer.
func (p *Processor) assemble(v emergency.Verdict, body string) string {
	var b strings.Builder
	b.WriteString(p.msgs.Header)
	b.WriteString("  \n\n")
	b.WriteString(body)
	b.WriteString("  \n\n")
	b.WriteString(p.msgs.Disclaimer)
	b.WriteString("\n")
	return p.withNotice(v, b.String())
}

func (p *Processor) withNotice(v emergency.Verdict, text string) string {
	if !v.Emergency {
		return text
	}
	return p.msgs.EmergencyNotice + "\n\n" + text
}

func ctxKind(ctx context.Context) backend.Kind {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return backend.KindTimeout
	}
	return backend.KindCanceled
}
