package scraper

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gistworks/skim/models"
)

func testOptions() models.ScrapingOptions {
	return (&models.ScrapingOptions{}).Merged()
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body verbatim on success", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, models.DefaultUserAgent, r.Header.Get("User-Agent"))
			assert.Equal(t, "1", r.Header.Get("DNT"))
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello</body></html>"))
		}))
		defer server.Close()

		body, err := NewFetcher().Fetch(context.Background(), server.URL, testOptions())
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello</body></html>", body)
	})

	t.Run("sends extra headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "token-123", r.Header.Get("X-Custom"))
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		opts := (&models.ScrapingOptions{
			Headers: map[string]string{"X-Custom": "token-123"},
		}).Merged()
		_, err := NewFetcher().Fetch(context.Background(), server.URL, opts)
		require.NoError(t, err)
	})

	t.Run("decompresses gzip bodies", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			_, _ = gz.Write([]byte("<html><body>compressed</body></html>"))
			_ = gz.Close()
		}))
		defer server.Close()

		body, err := NewFetcher().Fetch(context.Background(), server.URL, testOptions())
		require.NoError(t, err)
		assert.Equal(t, "<html><body>compressed</body></html>", body)
	})

	t.Run("caps the decompressed body size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			// Highly compressible payload well past the cap.
			_, _ = gz.Write(bytes.Repeat([]byte("a"), maxBodyBytes+1024*1024))
			_ = gz.Close()
		}))
		defer server.Close()

		body, err := NewFetcher().Fetch(context.Background(), server.URL, testOptions())
		require.NoError(t, err)
		assert.Equal(t, maxBodyBytes, len(body))
	})

	t.Run("classifies rejecting statuses", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status   int
			wantCode string
		}{
			{http.StatusForbidden, models.ErrCodeForbidden},
			{http.StatusNotFound, models.ErrCodeNotFound},
			{http.StatusInternalServerError, models.ErrCodeServerError},
			{http.StatusServiceUnavailable, models.ErrCodeServerError},
			{http.StatusTeapot, models.ErrCodeHTTPError},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer server.Close()

				_, err := NewFetcher().Fetch(context.Background(), server.URL, testOptions())
				require.Error(t, err)

				var se *models.ScrapeError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.wantCode, se.Code)
			})
		}
	})

	t.Run("classifies timeouts", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		opts := (&models.ScrapingOptions{Timeout: 20 * time.Millisecond}).Merged()
		_, err := NewFetcher().Fetch(context.Background(), server.URL, opts)
		require.Error(t, err)

		var se *models.ScrapeError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, models.ErrCodeTimeout, se.Code)
	})

	t.Run("classifies connection refused", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := NewFetcher().Fetch(context.Background(), url, testOptions())
		require.Error(t, err)

		var se *models.ScrapeError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, models.ErrCodeConnectionRefused, se.Code)
	})

	t.Run("follows redirects up to the cap", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/hop/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/final", http.StatusFound)
		})
		mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("landed"))
		})
		mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/loop", http.StatusFound)
		})

		body, err := NewFetcher().Fetch(context.Background(), server.URL+"/hop/1", testOptions())
		require.NoError(t, err)
		assert.Equal(t, "landed", body)

		_, err = NewFetcher().Fetch(context.Background(), server.URL+"/loop", testOptions())
		require.Error(t, err, "endless redirect chain must fail")
	})
}
