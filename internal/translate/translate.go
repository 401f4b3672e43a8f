// Package translate converts model output into the display language one
// bullet point at a time so the list structure survives translation.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyInput is returned for blank text.
	ErrEmptyInput = errors.New("translate: empty input")

	// ErrTranslation wraps the first segment failure; no partial output is returned.
	ErrTranslation = errors.New("translate: translation failed")
)

// SegmentSeparator joins translated segments.
const SegmentSeparator = "\n\n"

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// SegmentTranslator translates a single segment.
type SegmentTranslator interface {
	TranslateSegment(ctx context.Context, segment, source, target string) (string, error)
}

// Segments splits text on line boundaries and drops blank lines.
func Segments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Segmented translates each non-blank line independently and rejoins them
// with SegmentSeparator, keeping the original order.
type Segmented struct {
	seg         SegmentTranslator
	concurrency int
}

// NewSegmented returns a Translator; concurrency <= 0 means one segment at a time.
func NewSegmented(seg SegmentTranslator, concurrency int) *Segmented {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Segmented{seg: seg, concurrency: concurrency}
}

func (s *Segmented) Translate(ctx context.Context, text, source, target string) (string, error) {
	segments := Segments(text)
	if len(segments) == 0 {
		return "", ErrEmptyInput
	}
	if source == target {
		return strings.Join(segments, SegmentSeparator), nil
	}

	translated := make([]string, len(segments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, segment := range segments {
		g.Go(func() error {
			out, err := s.seg.TranslateSegment(gctx, segment, source, target)
			if err != nil {
				return fmt.Errorf("segment %d: %w", i, err)
			}
			out = strings.TrimSpace(out)
			if out == "" {
				return fmt.Errorf("segment %d: empty translation", i)
			}
			translated[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslation, err)
	}
	return strings.Join(translated, SegmentSeparator), nil
}
