// Package scraper fetches pages and drives the retry loop around content
// extraction. Fetch failures are classified so the final error message can
// name what went wrong; classification never changes retry behavior.
package scraper

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/gistworks/skim/models"
)

const (
	// maxRedirects caps the redirect chain per request.
	maxRedirects = 5

	// maxBodyBytes caps how much markup is read from a response.
	maxBodyBytes = 10 * 1024 * 1024
)

// Fetcher issues HTTP GETs with per-call timeout, user agent, and extra
// headers. Safe for concurrent use; the underlying client is shared.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher following up to maxRedirects redirects.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Fetch retrieves the URL and returns the response body verbatim for any
// status below 400. Failures come back as *models.ScrapeError with a
// human-readable message.
//
// opts must already be merged with defaults; opts.Timeout bounds this single
// request only.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string, opts models.ScrapingOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeInvalidInput, "could not build request", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyTransportError(targetURL, opts, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", classifyStatus(resp.StatusCode)
	}

	body := io.Reader(io.LimitReader(resp.Body, maxBodyBytes))
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return "", models.NewScrapeError(models.ErrCodeNetwork, "could not decompress response", err)
		}
		defer gz.Close()
		// The cap applies to the decompressed stream as well, so a small
		// compressed body cannot balloon past it.
		body = io.LimitReader(gz, maxBodyBytes)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", classifyTransportError(targetURL, opts, err)
	}
	return string(raw), nil
}

// classifyTransportError maps a transport-level failure to a ScrapeError
// with a message a user can act on.
func classifyTransportError(targetURL string, opts models.ScrapingOptions, err error) *models.ScrapeError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return models.NewScrapeError(models.ErrCodeDNSFailure,
			fmt.Sprintf("could not resolve host for %s", targetURL), err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return models.NewScrapeError(models.ErrCodeConnectionRefused,
			fmt.Sprintf("connection refused by %s", targetURL), err)
	}

	if isTimeout(err) {
		return models.NewScrapeError(models.ErrCodeTimeout,
			fmt.Sprintf("request timed out after %s", opts.Timeout), err)
	}

	return models.NewScrapeError(models.ErrCodeNetwork,
		fmt.Sprintf("request to %s failed", targetURL), err)
}

// classifyStatus maps a rejecting HTTP status to a ScrapeError.
func classifyStatus(status int) *models.ScrapeError {
	switch {
	case status == http.StatusForbidden:
		return models.NewScrapeError(models.ErrCodeForbidden,
			"access forbidden (HTTP 403) — the site may be blocking scrapers", nil)
	case status == http.StatusNotFound:
		return models.NewScrapeError(models.ErrCodeNotFound,
			"page not found (HTTP 404)", nil)
	case status >= 500:
		return models.NewScrapeError(models.ErrCodeServerError,
			fmt.Sprintf("server error (HTTP %d)", status), nil)
	default:
		return models.NewScrapeError(models.ErrCodeHTTPError,
			fmt.Sprintf("request rejected (HTTP %d)", status), nil)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
