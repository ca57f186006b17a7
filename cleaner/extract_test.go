package cleaner_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gistworks/skim/cleaner"
)

// extract is the test harness for the full single-document pass:
// parse, strip, extract.
func extract(t *testing.T, rawHTML string) cleaner.Candidate {
	t.Helper()
	doc, err := cleaner.Parse(rawHTML)
	require.NoError(t, err)
	cleaner.StripNoise(doc)
	return cleaner.ExtractContent(doc)
}

func TestExtractContent_MarkedContainerWins(t *testing.T) {
	t.Parallel()

	article := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 30)
	page := fmt.Sprintf(`<html><body>
		<nav>NAVNOISE home about contact NAVNOISE</nav>
		<div class="sidebar">SIDEBARNOISE trending links SIDEBARNOISE</div>
		<article>%s</article>
		<footer>FOOTERNOISE copyright FOOTERNOISE</footer>
	</body></html>`, article)

	cand := extract(t, page)

	assert.Equal(t, strings.TrimSpace(article), cand.Text)
	assert.NotContains(t, cand.Text, "NAVNOISE")
	assert.NotContains(t, cand.Text, "SIDEBARNOISE")
	assert.NotContains(t, cand.Text, "FOOTERNOISE")
}

func TestExtractContent_ParagraphFallback(t *testing.T) {
	t.Parallel()

	p1 := "This is the first paragraph of the story."
	p2 := "The second paragraph carries on with more detail."
	p3 := "And a third paragraph wraps the whole thing up."
	page := fmt.Sprintf(`<html><body>
		<div>
			<p>%s</p>
			<p>ok</p>
			<p>%s</p>
			<p>%s</p>
		</div>
	</body></html>`, p1, p2, p3)

	cand := extract(t, page)

	assert.Equal(t, p1+"\n\n"+p2+"\n\n"+p3, cand.Text)
}

func TestExtractContent_BodyFallback(t *testing.T) {
	t.Parallel()

	page := `<html><body><div>Just a tiny page.</div><span>More text here.</span></body></html>`

	cand := extract(t, page)

	assert.Equal(t, "Just a tiny page. More text here.", cand.Text)
}

func TestExtractContent_LongestStrategyWins(t *testing.T) {
	t.Parallel()

	shorter := strings.Repeat("short container text here. ", 8)
	longer := strings.Repeat("the real article text lives in this element. ", 10)
	page := fmt.Sprintf(`<html><body>
		<div class="post-content">%s</div>
		<article>%s</article>
	</body></html>`, shorter, longer)

	cand := extract(t, page)

	// .post-content is tried first in the cascade, but the article element
	// holds more text and must win on length alone.
	assert.Equal(t, strings.TrimSpace(longer), cand.Text)
}

func TestExtractContent_EmptyDocument(t *testing.T) {
	t.Parallel()

	cand := extract(t, `<html><body></body></html>`)
	assert.Equal(t, "", cand.Text)
	assert.Equal(t, 0, cand.Len())
}

func TestExtractContent_Idempotent(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<nav>menu menu menu</nav>
		<div class="content"><p>A modest paragraph that clears the length bar.</p>
		<p>Another paragraph with enough words to count.</p></div>
	</body></html>`

	first := extract(t, page)
	second := extract(t, page)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.HTML, second.HTML)
}

func TestStripNoise(t *testing.T) {
	t.Parallel()

	doc, err := cleaner.Parse(`<html><body>
		<nav>nav</nav>
		<header>header</header>
		<script>var x = 1;</script>
		<div class="advertisement">buy now</div>
		<div class="cookie-notice">cookies</div>
		<article>kept</article>
	</body></html>`)
	require.NoError(t, err)

	cleaner.StripNoise(doc)

	assert.Zero(t, doc.Find("nav").Length())
	assert.Zero(t, doc.Find("header").Length())
	assert.Zero(t, doc.Find("script").Length())
	assert.Zero(t, doc.Find(".advertisement").Length())
	assert.Zero(t, doc.Find(".cookie-notice").Length())
	assert.Equal(t, 1, doc.Find("article").Length())
}

func TestChooseBest(t *testing.T) {
	t.Parallel()

	a := cleaner.Candidate{Text: "aaaa"}
	b := cleaner.Candidate{Text: "bbbbbb"}
	tie := cleaner.Candidate{Text: "cccc"}

	assert.Equal(t, b, cleaner.ChooseBest(a, b))
	assert.Equal(t, b, cleaner.ChooseBest(b, a))
	// Ties keep the earlier candidate.
	assert.Equal(t, a, cleaner.ChooseBest(a, tie))
}

func TestCandidateLen_CountsCharacters(t *testing.T) {
	t.Parallel()

	// Five Urdu letters span many more bytes than five characters.
	urdu := cleaner.Candidate{Text: "مضمون"}
	assert.Equal(t, 5, urdu.Len())
	assert.Greater(t, len(urdu.Text), urdu.Len())

	cjk := cleaner.Candidate{Text: strings.Repeat("文", 7)}
	assert.Equal(t, 7, cjk.Len())

	// Character counting keeps comparisons fair across scripts: four CJK
	// characters must not beat five ASCII ones on byte weight.
	assert.Equal(t,
		cleaner.Candidate{Text: "abcde"},
		cleaner.ChooseBest(cleaner.Candidate{Text: "abcde"}, cleaner.Candidate{Text: "文文文文"}))
}
