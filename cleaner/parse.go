package cleaner

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse builds a working document from raw markup. Each scrape attempt gets
// its own document, so destructive operations (noise stripping) never leak
// across attempts or concurrent calls.
func Parse(rawHTML string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("cleaner: parse markup: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// visibleText walks the node tree collecting text content, skipping
// script/style/noscript subtrees. Used for the whole-document fallback when
// no strategy found a usable container.
func visibleText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
