package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleTranslateSegment(t *testing.T) {
	var got googleRequest
	var gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"- ভাড়াটিয়া &amp; বাড়িওয়ালা"}]}}`))
	}))
	defer srv.Close()

	g := NewGoogle("t-key", srv.URL, srv.Client())
	out, err := g.TranslateSegment(context.Background(), "- tenant & landlord", "en", "bn")
	require.NoError(t, err)

	assert.Equal(t, "- ভাড়াটিয়া & বাড়িওয়ালা", out)
	assert.Equal(t, "t-key", gotKey)
	assert.Empty(t, gotQuery)
	assert.Equal(t, googleRequest{Q: "- tenant & landlord", Source: "en", Target: "bn", Format: "text"}, got)
}

func TestGoogleTranslateSegmentFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusForbidden, `{"error":{"code":403}}`},
		{"malformed", http.StatusOK, `nope`},
		{"no translations", http.StatusOK, `{"data":{"translations":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGoogle("k", srv.URL, nil).TranslateSegment(context.Background(), "x", "en", "bn")
			assert.Error(t, err)
		})
	}
}

func TestGoogleMissingKey(t *testing.T) {
	_, err := NewGoogle("", "", nil).TranslateSegment(context.Background(), "x", "en", "bn")
	assert.Error(t, err)
}

func TestGoogleErrorsDoNotCarryKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	const key = "SECRET-TRANSLATE-KEY"
	tr := NewSegmented(NewGoogle(key, endpoint, nil), 2)
	_, err := tr.Translate(context.Background(), "- one\n- two", "en", "bn")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslation)
	assert.NotContains(t, err.Error(), key)
}
