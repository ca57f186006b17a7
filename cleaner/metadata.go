package cleaner

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/gistworks/skim/models"
)

// ExtractMetadata pulls title and description from standard document
// locations. It never fails; missing values come back empty and the URL
// always echoes the input.
//
// Run this before StripNoise: the heading fallback may live inside a subtree
// the denylist would remove.
func ExtractMetadata(doc *goquery.Document, url string) models.Metadata {
	title := CleanText(doc.Find("title").First().Text())
	if title == "" {
		title = CleanText(doc.Find("h1").First().Text())
	}

	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	if desc == "" {
		desc, _ = doc.Find(`meta[property="og:description"]`).First().Attr("content")
	}

	return models.Metadata{
		Title:       title,
		Description: CleanText(desc),
		URL:         url,
	}
}
