package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
)

const defaultGoogleURL = "https://translation.googleapis.com/language/translate/v2"

// Google translates segments with the Cloud Translation v2 REST API.
type Google struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

type googleRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// NewGoogle builds a segment translator; endpoint and client may be empty/nil.
func NewGoogle(apiKey, endpoint string, client *http.Client) *Google {
	if endpoint == "" {
		endpoint = defaultGoogleURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Google{apiKey: apiKey, endpoint: endpoint, client: client}
}

func (g *Google) TranslateSegment(ctx context.Context, segment, source, target string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("google: api key not configured")
	}
	body, err := json.Marshal(googleRequest{Q: segment, Source: source, Target: target, Format: "text"})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("google: status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	var out googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("google: decode response: %w", err)
	}
	if len(out.Data.Translations) == 0 {
		return "", errors.New("google: no translations returned")
	}
	return html.UnescapeString(out.Data.Translations[0].TranslatedText), nil
}
