package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/gistworks/skim/cache"
	"github.com/gistworks/skim/models"
	"github.com/gistworks/skim/scraper"
	"github.com/gistworks/skim/store"
	"github.com/gistworks/skim/summary"
)

// sinkTimeout bounds background sink delivery, which outlives the request.
const sinkTimeout = 15 * time.Second

// ScrapeRunner is the slice of the scraper the handler needs. Tests inject
// stubs through it.
type ScrapeRunner interface {
	ScrapeWith(ctx context.Context, rawURL string, opts *models.ScrapingOptions, render scraper.RenderOptions) *models.ScrapeResponse
}

// Scrape returns a handler for POST /api/v1/scrape.
//
// Flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (opt-in via max_age; summarized responses skip the cache
//     so a plain scrape can never serve a digest-less cached entry and vice
//     versa).
//  3. Run the scrape pipeline.
//  4. On success: summarize/translate when requested, then fan out to the
//     sinks fire-and-forget.
func Scrape(sc ScrapeRunner, cc *cache.Cache, sinks []store.Sink, summarySentences int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		useCache := cc != nil && req.MaxAge > 0 && !req.Summarize
		cacheKey := cache.Key{URL: req.URL, Format: req.Format, Mode: req.ExtractMode}
		if useCache {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				cached.CacheStatus = "hit"
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		result := sc.ScrapeWith(c.Request.Context(), req.URL, req.Options(), scraper.RenderOptions{
			Format:      req.Format,
			ExtractMode: req.ExtractMode,
		})

		if !result.Success {
			c.JSON(statusFor(result.Error), result)
			return
		}

		if req.Summarize {
			result.Summary = summary.Summarize(result.Content, summarySentences)
			result.Translation = summary.Translate(result.Summary)
		}

		deliverToSinks(sinks, req.URL, result)

		if useCache {
			cc.Set(cacheKey, result)
			result.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, result)
	}
}

// deliverToSinks fans the result out to every sink in the background.
// Failures are logged, never surfaced: persistence is fire-and-forget.
func deliverToSinks(sinks []store.Sink, url string, result *models.ScrapeResponse) {
	if len(sinks) == 0 {
		return
	}

	content := result.Content
	sum, translation := result.Summary, result.Translation

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)
		for _, sink := range sinks {
			g.Go(func() error {
				return sink.SaveArticle(ctx, url, content)
			})
			if sum != "" {
				g.Go(func() error {
					return sink.SaveDigest(ctx, url, sum, translation)
				})
			}
		}
		if err := g.Wait(); err != nil {
			slog.Warn("sink delivery failed", "url", url, "error", err)
		}
	}()
}

// statusFor maps a failed result's error code to an HTTP status.
// The body is always the full ScrapeResponse shape.
func statusFor(detail *models.ErrorDetail) int {
	if detail == nil {
		return http.StatusInternalServerError
	}
	switch detail.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case models.ErrCodeDNSFailure, models.ErrCodeConnectionRefused,
		models.ErrCodeNetwork, models.ErrCodeForbidden,
		models.ErrCodeNotFound, models.ErrCodeServerError,
		models.ErrCodeHTTPError, models.ErrCodeExhausted,
		models.ErrCodeInsufficientContent:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
