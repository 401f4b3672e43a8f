package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 512

// postJSON sends body as JSON and decodes a 2xx response into out.
func postJSON(ctx context.Context, client *http.Client, provider, url string, header http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Provider: provider, Kind: KindUnknown, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Provider: provider, Kind: KindUnknown, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return transportError(ctx, provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Provider: provider,
			Kind:     KindHTTP,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status: %s", bytes.TrimSpace(snippet)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, provider, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Provider: provider, Kind: KindParse, Err: err}
	}
	return nil
}
