package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient() *HTTPClient {
	return NewHTTPClient(HTTPClientConfig{MaxIdleConns: 2, MaxIdleConnsPerHost: 2, UserAgent: "scrapekit-test"}, zap.NewNop())
}

func TestHTTPClient_GetHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "scrapekit-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><h1>Title</h1></body></html>`))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		default:
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient()

	t.Run("html page", func(t *testing.T) {
		doc, err := client.GetHTML(context.Background(), server.URL+"/ok")
		require.NoError(t, err)
		assert.Equal(t, "Title", doc.Find("h1").Text())
	})

	t.Run("not html", func(t *testing.T) {
		_, err := client.GetHTML(context.Background(), server.URL+"/json")
		assert.True(t, errors.Is(err, ErrNotHTML), "got %v", err)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := client.GetHTML(context.Background(), server.URL+"/missing")
		assert.True(t, errors.Is(err, ErrUnexpectedStatus), "got %v", err)
	})
}
