package cleaner

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// Extraction modes accepted by Cleaner.Extract.
const (
	ModeCascade     = "cascade"
	ModeReadability = "readability"
)

// Cleaner bundles the extraction strategies with a reusable Markdown
// converter. The converter is created once and shared across requests
// (goroutine-safe); everything else in the package is stateless.
type Cleaner struct {
	mdConverter *converter.Converter
}

// New initialises a Cleaner with a pre-configured Markdown converter.
func New() *Cleaner {
	return &Cleaner{
		mdConverter: newMarkdownConverter(),
	}
}

// Extract returns the best content candidate for one fetched document.
//
// doc must already be noise-stripped; rawHTML is the markup as fetched,
// needed by the readability mode which runs its own cleaning. An unknown
// mode falls through to the cascade.
func (c *Cleaner) Extract(doc *goquery.Document, rawHTML, pageURL, mode string) Candidate {
	if mode == ModeReadability {
		if cand, ok := extractReadability(rawHTML, pageURL); ok {
			return cand
		}
		// Readability found nothing usable; the cascade still gets a shot.
	}
	return ExtractContent(doc)
}

// Markdown renders a candidate's source HTML as Markdown. The domain
// resolves relative links so the output is self-contained.
func (c *Cleaner) Markdown(cand Candidate, domain string) (string, error) {
	return c.mdConverter.ConvertString(cand.HTML, converter.WithDomain(domain))
}
