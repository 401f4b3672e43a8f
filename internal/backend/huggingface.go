package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co/models/"
	defaultHFModel   = "mistralai/Mistral-7B-Instruct-v0.2"
)

// HuggingFace calls the Hugging Face Inference API text-generation endpoint.
type HuggingFace struct {
	opts Options
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFace builds a client; a missing API key is reported per call.
func NewHuggingFace(opts Options) *HuggingFace {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultHFBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	if opts.Model == "" {
		opts.Model = defaultHFModel
	}
	return &HuggingFace{opts: opts}
}

func (c *HuggingFace) Name() string { return "huggingface" }

func (c *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	if c.opts.APIKey == "" {
		return "", missingKey(c.Name())
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.opts.APIKey)

	var out []hfGeneration
	err := postJSON(ctx, c.opts.httpClient(), c.Name(), c.opts.BaseURL+c.opts.Model, header, hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{MaxNewTokens: c.opts.maxTokens()},
		Options:    hfOptions{WaitForModel: false},
	}, &out)
	if err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: errors.New("no generations returned")}
	}
	// Some hosted models echo the prompt even with return_full_text=false.
	text := strings.TrimSpace(strings.TrimPrefix(out[0].GeneratedText, prompt))
	if text == "" {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: errors.New("empty generation")}
	}
	return text, nil
}
