package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// Gemini calls the Gemini generateContent REST endpoint with the key in the x-goog-api-key header.
type Gemini struct {
	opts Options
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// NewGemini builds a client; a missing API key is reported per call.
func NewGemini(opts Options) *Gemini {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGeminiBaseURL
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if opts.Model == "" {
		opts.Model = defaultGeminiModel
	}
	return &Gemini{opts: opts}
}

func (c *Gemini) Name() string { return "gemini" }

func (c *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if c.opts.APIKey == "" {
		return "", missingKey(c.Name())
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.opts.BaseURL, url.PathEscape(c.opts.Model))
	// The key stays out of the URL so transport errors never carry it.
	header := http.Header{}
	header.Set("x-goog-api-key", c.opts.APIKey)

	var out geminiResponse
	err := postJSON(ctx, c.opts.httpClient(), c.Name(), endpoint, header, geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: c.opts.maxTokens()},
	}, &out)
	if err != nil {
		return "", err
	}
	if reason := out.PromptFeedback.BlockReason; reason != "" {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: fmt.Errorf("prompt blocked: %s", reason)}
	}
	if len(out.Candidates) == 0 {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: errors.New("no candidates returned")}
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: fmt.Errorf("empty candidate (finish reason %q)", out.Candidates[0].FinishReason)}
	}
	return text, nil
}
