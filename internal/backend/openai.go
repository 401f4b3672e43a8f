package backend

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = "You are a careful legal assistant. Answer concisely in bullet points (using - or *) and say so when the law is unclear."

// OpenAI calls the Chat Completions API through the official SDK. BaseURL may
// point at any OpenAI-compatible server.
type OpenAI struct {
	model     openai.ChatModel
	maxTokens int
	hasKey    bool
	client    *openai.Client
}

// NewOpenAI builds a client; a missing API key is reported per call.
func NewOpenAI(opts Options) *OpenAI {
	model := openai.ChatModel(opts.Model)
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0), // retries are handled by WithRetry
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	cli := openai.NewClient(reqOpts...)
	return &OpenAI{
		model:     model,
		maxTokens: opts.maxTokens(),
		hasKey:    opts.APIKey != "",
		client:    &cli,
	}
}

func (c *OpenAI) Name() string { return "openai" }

func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.hasKey {
		return "", missingKey(c.Name())
	}
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               c.model,
		Messages:            buildMessages(systemPrompt, prompt),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", c.mapError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: errors.New("no choices returned")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Provider: c.Name(), Kind: KindEmptyOutput, Err: errors.New("empty completion")}
	}
	return text, nil
}

func (c *OpenAI) mapError(ctx context.Context, err error) *Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &Error{Provider: c.Name(), Kind: KindHTTP, Status: apiErr.StatusCode, Err: err}
	}
	var urlErr *url.Error
	var netErr net.Error
	if ctx.Err() != nil || errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return transportError(ctx, c.Name(), err)
	}
	return &Error{Provider: c.Name(), Kind: KindParse, Err: err}
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
