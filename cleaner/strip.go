package cleaner

import "github.com/PuerkitoBio/goquery"

// noiseSelectors is the denylist of subtrees presumed to carry no article
// content. Every match is removed from the working document before
// extraction runs.
var noiseSelectors = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"nav",
	"header",
	"footer",
	"aside",
	".nav", ".navbar", ".navigation", ".menu",
	".sidebar",
	".ad", ".ads", ".advert", ".advertisement", ".ad-container", ".ad-banner",
	".comments", "#comments", ".comment-section",
	".social", ".social-share", ".share-buttons",
	".related", ".related-posts",
	".cookie-notice", ".cookie-banner",
	".popup", ".modal", ".overlay",
}

// StripNoise removes every noise subtree from the document. Destructive on
// the working copy; callers that need the original markup must re-parse.
func StripNoise(doc *goquery.Document) {
	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}
}
