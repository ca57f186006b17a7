package cleaner

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Extraction thresholds, in characters of cleaned text.
const (
	// selectorAcceptLen: a cascade candidate longer than this is presumed to
	// be the true article body and is returned without trying fallbacks.
	selectorAcceptLen = 1000

	// minParagraphLen: paragraphs at or below this length are ignored by the
	// paragraph-aggregation fallback (bylines, timestamps, "Read more").
	minParagraphLen = 20

	// bodyFallbackFloor: when the best candidate is still shorter than this,
	// the whole document's visible text is considered as a last resort.
	bodyFallbackFloor = 50
)

// Candidate is a single extracted-text result produced by one strategy.
// Candidates carry the source HTML of the winning subtree so the output can
// also be rendered as Markdown.
type Candidate struct {
	Text string
	HTML string
}

// Len returns the candidate's cleaned-text length in characters, not bytes,
// so non-ASCII pages compete on equal terms.
func (c Candidate) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// ChooseBest is the reducer used everywhere a candidate competes with a
// previous best: strictly longer text wins, ties keep the earlier candidate.
func ChooseBest(prev, next Candidate) Candidate {
	if next.Len() > prev.Len() {
		return next
	}
	return prev
}

// strategy is one named content locator in the cascade. Strategies are
// evaluated independently; none is trusted over another except by the length
// of the text it finds.
type strategy struct {
	name    string
	matcher cascadia.Selector
}

// contentStrategies is the ordered cascade: site-specific container classes
// first, then semantic containers, then broad class-substring matches.
// Adding or removing a strategy is a data change, not a logic change.
var contentStrategies = []strategy{
	{"post-content", cascadia.MustCompile(".post-content")},
	{"entry-content", cascadia.MustCompile(".entry-content")},
	{"article-content", cascadia.MustCompile(".article-content")},
	{"article-body", cascadia.MustCompile(".article-body")},
	{"post-body", cascadia.MustCompile(".post-body")},
	{"story-body", cascadia.MustCompile(".story-body")},
	{"blog-post", cascadia.MustCompile(".blog-post")},
	{"article-tag", cascadia.MustCompile("article")},
	{"main-role", cascadia.MustCompile("[role='main']")},
	{"main-tag", cascadia.MustCompile("main")},
	{"main-content", cascadia.MustCompile("#main-content, .main-content, #content, .content")},
	{"content-class", cascadia.MustCompile("[class*='content']")},
	{"post-class", cascadia.MustCompile("[class*='post']")},
	{"article-class", cascadia.MustCompile("[class*='article']")},
	{"blog-class", cascadia.MustCompile("[class*='blog']")},
}

// ExtractContent finds the best article text in a stripped document. It never
// fails: the worst case is an empty candidate.
//
// The cascade tries every strategy and keeps the single longest cleaned text
// across all matches. A candidate above selectorAcceptLen wins outright;
// otherwise paragraph aggregation and finally the whole document's visible
// text compete on the same longest-wins terms.
func ExtractContent(doc *goquery.Document) Candidate {
	var best Candidate
	for _, st := range contentStrategies {
		doc.FindMatcher(st.matcher).Each(func(_ int, s *goquery.Selection) {
			best = ChooseBest(best, candidateFrom(s))
		})
	}

	if best.Len() > selectorAcceptLen {
		return best
	}

	// Paragraph aggregation: every substantial paragraph, in document order,
	// separated by blank lines.
	var texts, fragments []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := CleanText(s.Text())
		if utf8.RuneCountInString(text) <= minParagraphLen {
			return
		}
		texts = append(texts, text)
		if outer, err := goquery.OuterHtml(s); err == nil {
			fragments = append(fragments, outer)
		}
	})
	best = ChooseBest(best, Candidate{
		Text: strings.Join(texts, "\n\n"),
		HTML: strings.Join(fragments, "\n"),
	})

	// Whole-body fallback, only when everything above found next to nothing
	// and the document actually has more to offer.
	if best.Len() < bodyFallbackFloor {
		if body := doc.Find("body"); len(body.Nodes) > 0 {
			inner, err := body.Html()
			if err != nil {
				inner = ""
			}
			best = ChooseBest(best, Candidate{
				Text: CleanText(visibleText(body.Nodes[0])),
				HTML: inner,
			})
		}
	}

	return best
}

// candidateFrom builds a candidate out of one matched container, carrying
// its serialized markup for Markdown rendering.
func candidateFrom(s *goquery.Selection) Candidate {
	cand := Candidate{Text: CleanText(s.Text())}
	if cand.Len() == 0 {
		return cand
	}
	if outer, err := goquery.OuterHtml(s); err == nil {
		cand.HTML = outer
	}
	return cand
}
