package cleaner

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// minReadabilityLen is the minimum text length for readability output to be
// considered valid. Below this the algorithm likely failed to locate the main
// content and the caller should fall back to the cascade.
const minReadabilityLen = 50

// extractReadability runs the Mozilla Readability algorithm on raw markup.
// Returns ok=false when the result is unusable so the cascade can take over;
// the pipeline must never fail just because readability choked.
func extractReadability(rawHTML, pageURL string) (Candidate, bool) {
	parsedURL, err := nurl.Parse(pageURL)
	if err != nil {
		slog.Warn("readability: invalid source URL", "url", pageURL, "error", err)
		return Candidate{}, false
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Warn("readability: extraction failed", "url", pageURL, "error", err)
		return Candidate{}, false
	}

	cand := Candidate{Text: CleanText(article.TextContent), HTML: article.Content}
	if cand.Len() < minReadabilityLen {
		slog.Warn("readability: extracted content too short",
			"url", pageURL, "length", cand.Len(),
		)
		return Candidate{}, false
	}

	return cand, true
}
