package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerate(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantKind Kind
	}{
		{
			name:     "joins candidate parts",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"parts":[{"text":"- one\n"},{"text":"- two"}]},"finishReason":"STOP"}]}`,
			wantText: "- one\n- two",
		},
		{
			name:     "blocked prompt",
			status:   http.StatusOK,
			body:     `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantKind: KindEmptyOutput,
		},
		{
			name:     "no candidates",
			status:   http.StatusOK,
			body:     `{"candidates":[]}`,
			wantKind: KindEmptyOutput,
		},
		{
			name:     "empty candidate",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`,
			wantKind: KindEmptyOutput,
		},
		{
			name:     "malformed body",
			status:   http.StatusOK,
			body:     `not json`,
			wantKind: KindParse,
		},
		{
			name:     "bad key",
			status:   http.StatusForbidden,
			body:     `{"error":{"code":403}}`,
			wantKind: KindHTTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewGemini(Options{APIKey: "g-key", BaseURL: srv.URL})
			text, err := c.Generate(context.Background(), "prompt")
			if tt.wantKind == KindUnknown {
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, text)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestGeminiRequestShape(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGemini(Options{APIKey: "g-key", BaseURL: srv.URL + "/v1beta/", Model: "gemini-pro", MaxOutputTokens: 64})
	_, err := c.Generate(context.Background(), "question")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", gotPath)
	assert.Equal(t, "g-key", gotKey)
	assert.Empty(t, gotQuery)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "question", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 64, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestGeminiErrorsDoNotCarryKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	const key = "SECRET-GEMINI-KEY"
	_, err := NewGemini(Options{APIKey: key, BaseURL: baseURL}).Generate(context.Background(), "question")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.NotContains(t, err.Error(), key)
}
