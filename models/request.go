package models

import "time"

// Default scraping options, applied field-by-field when the caller leaves
// them unset. The browser-like user agent and header set exist because many
// sites reject requests that do not look like a real browser.
const (
	DefaultTimeoutMs = 10000
	DefaultRetries   = 3
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// DefaultHeaders returns the browser-like request headers sent with every
// fetch unless overridden per request.
//
// Accept-Encoding advertises gzip only; the fetcher decompresses gzip bodies
// itself so callers always see plain markup.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Accept-Encoding":           "gzip",
		"DNT":                       "1",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}

// ScrapingOptions is the per-call fetch/retry configuration. Immutable once
// merged; callers get a fresh merged copy per scrape.
type ScrapingOptions struct {
	// Timeout bounds a single fetch attempt, not the whole retry loop.
	Timeout time.Duration

	// Retries is the maximum number of fetch attempts.
	Retries int

	// UserAgent is the identification string sent with requests.
	UserAgent string

	// Headers are extra request headers, merged over the defaults.
	Headers map[string]string
}

// DefaultOptions returns the built-in scraping options.
func DefaultOptions() ScrapingOptions {
	return ScrapingOptions{
		Timeout:   DefaultTimeoutMs * time.Millisecond,
		Retries:   DefaultRetries,
		UserAgent: DefaultUserAgent,
		Headers:   DefaultHeaders(),
	}
}

// Merged returns a copy of o with the built-in defaults applied to every
// unset field. Caller-supplied headers override default headers key-by-key.
func (o *ScrapingOptions) Merged() ScrapingOptions {
	return o.MergedOver(DefaultOptions())
}

// MergedOver layers o on top of base: set fields in o win, unset fields fall
// through to base. The returned options own a fresh header map, so base can
// be shared across calls.
func (o *ScrapingOptions) MergedOver(base ScrapingOptions) ScrapingOptions {
	merged := base
	merged.Headers = make(map[string]string, len(base.Headers))
	for k, v := range base.Headers {
		merged.Headers[k] = v
	}
	if o == nil {
		return merged
	}
	if o.Timeout > 0 {
		merged.Timeout = o.Timeout
	}
	if o.Retries > 0 {
		merged.Retries = o.Retries
	}
	if o.UserAgent != "" {
		merged.UserAgent = o.UserAgent
	}
	for k, v := range o.Headers {
		merged.Headers[k] = v
	}
	return merged
}

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the target page to scrape. Required; must be absolute http(s).
	URL string `json:"url" binding:"required"`

	// TimeoutMs is the maximum duration in milliseconds for a single fetch
	// attempt. Unset falls back to the service default (10000 unless
	// configured otherwise).
	TimeoutMs int `json:"timeout_ms,omitempty" binding:"omitempty,min=100,max=120000"`

	// Retries is the maximum number of fetch attempts. Unset falls back to
	// the service default (3 unless configured otherwise).
	Retries int `json:"retries,omitempty" binding:"omitempty,min=1,max=10"`

	// UserAgent overrides the default desktop-browser user agent.
	UserAgent string `json:"user_agent,omitempty"`

	// Headers are extra request headers merged over the defaults.
	Headers map[string]string `json:"headers,omitempty"`

	// Format controls the content representation in the response.
	// Allowed: "text" (default), "markdown".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=text markdown"`

	// ExtractMode controls the content extraction strategy.
	// "cascade" (default): selector cascade with paragraph/body fallbacks.
	// "readability": Mozilla Readability algorithm.
	ExtractMode string `json:"extract_mode,omitempty" binding:"omitempty,oneof=cascade readability"`

	// Summarize enables the summarization + translation pipeline on the
	// scraped content. Results are also delivered to the configured sinks.
	Summarize bool `json:"summarize,omitempty"`

	// MaxAge enables the response cache: a cached result younger than
	// MaxAge milliseconds is returned without fetching.
	MaxAge int `json:"max_age,omitempty"`
}

// Defaults applies default values to unset rendering fields. Fetch fields
// (timeout, retries, user agent) stay zero here so the scraper can layer the
// service-configured defaults under them.
func (r *ScrapeRequest) Defaults() {
	if r.Format == "" {
		r.Format = "text"
	}
	if r.ExtractMode == "" {
		r.ExtractMode = "cascade"
	}
}

// Options converts the request's fetch-related fields into ScrapingOptions.
func (r *ScrapeRequest) Options() *ScrapingOptions {
	return &ScrapingOptions{
		Timeout:   time.Duration(r.TimeoutMs) * time.Millisecond,
		Retries:   r.Retries,
		UserAgent: r.UserAgent,
		Headers:   r.Headers,
	}
}
