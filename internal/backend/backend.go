// Package backend sends prompts to a remote language model and maps provider
// results onto a single error taxonomy.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Client generates text for a formatted prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Options configures a provider client. Zero values fall back to provider defaults.
type Options struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxOutputTokens int
	HTTPClient      *http.Client
}

const defaultMaxOutputTokens = 200

func (o Options) maxTokens() int {
	if o.MaxOutputTokens <= 0 {
		return defaultMaxOutputTokens
	}
	return o.MaxOutputTokens
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return http.DefaultClient
}

// FormatPrompt scopes the user's question to the laws of one jurisdiction.
func FormatPrompt(jurisdiction, query string) string {
	return fmt.Sprintf("Provide a legal response based on the laws of %s only in bullet points:\n\n%s", jurisdiction, query)
}

// Kind classifies backend failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyKey
	KindNetwork
	KindHTTP
	KindParse
	KindTimeout
	KindCanceled
	KindEmptyOutput
)

func (k Kind) String() string {
	switch k {
	case KindEmptyKey:
		return "empty_key"
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	case KindEmptyOutput:
		return "empty_output"
	default:
		return "unknown"
	}
}

// ErrCredentialMissing is wrapped by every KindEmptyKey failure.
var ErrCredentialMissing = errors.New("api key not configured")

// Error is the failure half of a backend response.
type Error struct {
	Provider string
	Kind     Kind
	Status   int // set for KindHTTP
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Kind == KindHTTP {
		fmt.Fprintf(&b, " %d", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// IsTransient reports whether a failure is worth one more attempt.
func IsTransient(err error) bool {
	var be *Error
	if !errors.As(err, &be) {
		return false
	}
	switch be.Kind {
	case KindNetwork:
		return true
	case KindHTTP:
		return be.Status == http.StatusBadGateway ||
			be.Status == http.StatusServiceUnavailable ||
			be.Status == http.StatusGatewayTimeout
	default:
		return false
	}
}

func missingKey(provider string) *Error {
	return &Error{Provider: provider, Kind: KindEmptyKey, Err: ErrCredentialMissing}
}

// transportError maps a failed round trip onto Timeout, Canceled or Network.
func transportError(ctx context.Context, provider string, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Provider: provider, Kind: KindTimeout, Err: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &Error{Provider: provider, Kind: KindCanceled, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Provider: provider, Kind: KindTimeout, Err: err}
	}
	return &Error{Provider: provider, Kind: KindNetwork, Err: err}
}
