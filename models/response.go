package models

// ScrapeResponse is the discriminated scrape outcome, used both as the
// orchestrator's return value and as the response body for
// POST /api/v1/scrape.
//
// Success implies Content is non-empty cleaned text: either a single attempt
// crossed the sufficiency threshold, or it is the best-effort text
// accumulated across all attempts.
type ScrapeResponse struct {
	// Success indicates whether any usable content was extracted.
	Success bool `json:"success"`

	// Content is the extracted article in the requested format.
	Content string `json:"content,omitempty"`

	// Summary is the keyword-scored sentence summary of Content.
	// Present only when summarization was requested.
	Summary string `json:"summary,omitempty"`

	// Translation is the translated summary.
	// Present only when summarization was requested.
	Translation string `json:"translation,omitempty"`

	// Metadata contains extracted page metadata. The URL field always
	// echoes the input, even on failure.
	Metadata Metadata `json:"metadata"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Attempts is the number of fetch attempts made.
	Attempts int `json:"attempts,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// Metadata holds page-level information extracted during scraping.
type Metadata struct {
	// Title is the document title, falling back to the first top-level
	// heading. Possibly empty.
	Title string `json:"title"`

	// Description comes from the description meta tag, falling back to the
	// Open Graph description. Possibly empty.
	Description string `json:"description"`

	// URL echoes the input URL.
	URL string `json:"url"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the cumulative time spent fetching, across all attempts.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the cumulative time spent stripping and extracting.
	ExtractMs int64 `json:"extract_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
