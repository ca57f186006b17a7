// Package store holds the persistence sinks fed by the scrape pipeline.
// Sinks are invoked fire-and-forget: callers may surface or swallow the
// classified error they return.
package store

import (
	"context"
	"fmt"

	"github.com/gistworks/skim/models"
)

// Sink accepts the two result shapes the pipeline produces: the full
// article text, and the summary/translation pair.
type Sink interface {
	// SaveArticle persists the full extracted text for a URL.
	SaveArticle(ctx context.Context, url, text string) error

	// SaveDigest persists the summary and translation for a URL.
	SaveDigest(ctx context.Context, url, summary, translation string) error
}

// storageError wraps a sink failure into the shared classified error type.
func storageError(op string, err error) *models.ScrapeError {
	return models.NewScrapeError(models.ErrCodeStorage, fmt.Sprintf("%s failed", op), err)
}
