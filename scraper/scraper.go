package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gistworks/skim/cleaner"
	"github.com/gistworks/skim/models"
)

// sufficientLen is the content length (in characters) at which a single
// attempt is accepted immediately, without waiting for remaining attempts.
const sufficientLen = 100

// maxBackoff caps the exponential delay between attempts.
const maxBackoff = 5 * time.Second

// fetchClient abstracts the HTTP fetcher so tests can stub attempts.
type fetchClient interface {
	Fetch(ctx context.Context, targetURL string, opts models.ScrapingOptions) (string, error)
}

// RenderOptions selects how the winning candidate is represented.
type RenderOptions struct {
	// Format: "text" (default) or "markdown".
	Format string

	// ExtractMode: cleaner.ModeCascade (default) or cleaner.ModeReadability.
	ExtractMode string
}

// Scraper runs the full pipeline: fetch, strip, extract, and the bounded
// retry loop with best-result tracking. Safe for concurrent use; every call
// owns its own working state.
type Scraper struct {
	fetcher  fetchClient
	cl       *cleaner.Cleaner
	defaults models.ScrapingOptions

	// sleep waits between attempts; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Scraper around the given Cleaner. defaults carries the
// service-configured timeout, retries, and user agent; nil or unset fields
// fall back to the built-ins. Per-call options always win over defaults.
func New(cl *cleaner.Cleaner, defaults *models.ScrapingOptions) *Scraper {
	return &Scraper{
		fetcher:  NewFetcher(),
		cl:       cl,
		defaults: defaults.Merged(),
		sleep:    sleepCtx,
	}
}

// Scrape runs the pipeline with default rendering (plain text, cascade).
// opts may be nil; defaults are merged field-by-field.
func (s *Scraper) Scrape(ctx context.Context, rawURL string, opts *models.ScrapingOptions) *models.ScrapeResponse {
	return s.ScrapeWith(ctx, rawURL, opts, RenderOptions{})
}

// ScrapeWith runs the pipeline and renders the result per render.
//
// Attempts are strictly sequential; the backoff between them is a deliberate
// throttle against hammering the target. The loop tracks the longest content
// seen across attempts: an attempt reaching sufficientLen returns
// immediately, and once attempts are exhausted any non-empty best is still
// returned as success — partial text beats an error in a best-effort
// summarization pipeline. Failure is reserved for "nothing extractable at
// all".
func (s *Scraper) ScrapeWith(ctx context.Context, rawURL string, opts *models.ScrapingOptions, render RenderOptions) *models.ScrapeResponse {
	start := time.Now()
	resp := &models.ScrapeResponse{
		Metadata: models.Metadata{URL: rawURL},
	}

	if err := validateURL(rawURL); err != nil {
		resp.Error = err.ToDetail()
		resp.Timing.TotalMs = time.Since(start).Milliseconds()
		return resp
	}

	merged := opts.MergedOver(s.defaults)

	var (
		best     cleaner.Candidate
		bestMeta models.Metadata
		lastErr  *models.ScrapeError
	)

	for attempt := 1; attempt <= merged.Retries; attempt++ {
		resp.Attempts = attempt

		fetchStart := time.Now()
		rawHTML, err := s.fetcher.Fetch(ctx, rawURL, merged)
		resp.Timing.FetchMs += time.Since(fetchStart).Milliseconds()

		if err != nil {
			lastErr = asScrapeError(err)
			slog.Warn("fetch attempt failed",
				"url", rawURL,
				"attempt", attempt,
				"retries", merged.Retries,
				"error", err,
			)
			if attempt < merged.Retries {
				if err := s.sleep(ctx, backoffDelay(attempt)); err != nil {
					lastErr = models.NewScrapeError(models.ErrCodeTimeout, "scrape canceled", err)
					break
				}
			}
			continue
		}

		extractStart := time.Now()
		cand, meta, err := s.attempt(rawHTML, rawURL, render.ExtractMode)
		resp.Timing.ExtractMs += time.Since(extractStart).Milliseconds()

		if err != nil {
			lastErr = asScrapeError(err)
			slog.Warn("extraction attempt failed", "url", rawURL, "attempt", attempt, "error", err)
		} else {
			if next := cleaner.ChooseBest(best, cand); next != best {
				best, bestMeta = next, meta
			}
			if cand.Len() >= sufficientLen {
				return s.finish(resp, cand, meta, render, rawURL, start)
			}
			lastErr = models.NewScrapeError(models.ErrCodeInsufficientContent,
				fmt.Sprintf("extracted only %d characters of content", cand.Len()), nil)
			slog.Info("attempt yielded insufficient content",
				"url", rawURL, "attempt", attempt, "length", cand.Len(),
			)
		}

		if attempt < merged.Retries {
			if err := s.sleep(ctx, backoffDelay(attempt)); err != nil {
				lastErr = models.NewScrapeError(models.ErrCodeTimeout, "scrape canceled", err)
				break
			}
		}
	}

	// Exhausted. A below-threshold accumulated result is still better than
	// reporting failure.
	if best.Len() > 0 {
		return s.finish(resp, best, bestMeta, render, rawURL, start)
	}

	if lastErr == nil {
		lastErr = models.NewScrapeError(models.ErrCodeExhausted, "no content could be extracted", nil)
	}
	resp.Error = lastErr.ToDetail()
	resp.Timing.TotalMs = time.Since(start).Milliseconds()
	return resp
}

// attempt is the pure per-document step: parse, metadata, strip, extract.
// No retries, no timing, no best tracking.
func (s *Scraper) attempt(rawHTML, rawURL, mode string) (cleaner.Candidate, models.Metadata, error) {
	doc, err := cleaner.Parse(rawHTML)
	if err != nil {
		return cleaner.Candidate{}, models.Metadata{}, models.NewScrapeError(
			models.ErrCodeInternal, "could not parse page markup", err)
	}
	meta := cleaner.ExtractMetadata(doc, rawURL)
	cleaner.StripNoise(doc)
	return s.cl.Extract(doc, rawHTML, rawURL, mode), meta, nil
}

// finish builds a success response, rendering the candidate per render.
func (s *Scraper) finish(resp *models.ScrapeResponse, cand cleaner.Candidate, meta models.Metadata, render RenderOptions, rawURL string, start time.Time) *models.ScrapeResponse {
	content := cand.Text
	if render.Format == "markdown" && cand.HTML != "" {
		md, err := s.cl.Markdown(cand, rawURL)
		if err != nil {
			slog.Warn("markdown conversion failed, returning plain text", "url", rawURL, "error", err)
		} else {
			content = md
		}
	}

	resp.Success = true
	resp.Content = content
	resp.Metadata = meta
	resp.Timing.TotalMs = time.Since(start).Milliseconds()
	return resp
}

// validateURL rejects anything that is not an absolute http(s) URL. This is
// the only failure returned without contacting the network.
func validateURL(rawURL string) *models.ScrapeError {
	u, err := url.Parse(rawURL)
	if err != nil {
		return models.NewScrapeError(models.ErrCodeInvalidInput,
			fmt.Sprintf("invalid URL %q", rawURL), err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.NewScrapeError(models.ErrCodeInvalidInput,
			fmt.Sprintf("URL must be absolute http(s), got %q", rawURL), nil)
	}
	return nil
}

// backoffDelay returns the wait before the next attempt: 1s doubling per
// attempt, capped at maxBackoff.
func backoffDelay(attempt int) time.Duration {
	d := time.Duration(1<<(attempt-1)) * time.Second
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

// sleepCtx waits for d or until the caller's externally imposed deadline
// fires, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// asScrapeError normalises any error into a *models.ScrapeError.
func asScrapeError(err error) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	return models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
}
