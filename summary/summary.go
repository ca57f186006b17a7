// Package summary provides the two downstream text transforms of the
// pipeline: a keyword-scored extractive summarizer and a dictionary-based
// translation. Both are pure functions with no side effects; all scoring is
// lexical, never semantic.
package summary

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultSentences is the summary length used when the caller passes 0.
const DefaultSentences = 3

var (
	reSentenceEnd = regexp.MustCompile(`[.!?]+\s+`)
	reWord        = regexp.MustCompile(`[a-zA-Z']+`)
)

// stopwords are excluded from keyword scoring so frequent glue words do not
// dominate sentence scores.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "i": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "not": {}, "of": {}, "on": {}, "or": {}, "she": {}, "that": {},
	"the": {}, "their": {}, "there": {}, "they": {}, "this": {}, "to": {},
	"was": {}, "we": {}, "were": {}, "which": {}, "will": {}, "with": {},
	"you": {}, "your": {},
}

// Summarize selects the maxSentences highest-scoring sentences from text and
// returns them in document order. A sentence's score is the summed document
// frequency of its non-stopword keywords, normalised by sentence length so
// long sentences do not win by bulk alone.
//
// Texts with maxSentences or fewer sentences come back unchanged.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}

	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return strings.TrimSpace(text)
	}

	freq := keywordFrequencies(text)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		words := reWord.FindAllString(strings.ToLower(s), -1)
		if len(words) == 0 {
			continue
		}
		var sum float64
		for _, w := range words {
			if _, stop := stopwords[w]; stop {
				continue
			}
			sum += float64(freq[w])
		}
		ranked = append(ranked, scored{index: i, score: sum / float64(len(words))})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxSentences {
		ranked = ranked[:maxSentences]
	}

	// Back to document order.
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].index < ranked[j].index
	})

	picked := make([]string, 0, len(ranked))
	for _, r := range ranked {
		picked = append(picked, strings.TrimSpace(sentences[r.index]))
	}
	return strings.Join(picked, " ")
}

// splitSentences breaks text on terminal punctuation followed by whitespace,
// keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	rest := text
	for {
		loc := reSentenceEnd.FindStringIndex(rest)
		if loc == nil {
			if s := strings.TrimSpace(rest); s != "" {
				sentences = append(sentences, s)
			}
			return sentences
		}
		if s := strings.TrimSpace(rest[:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		rest = rest[loc[1]:]
	}
}

// keywordFrequencies counts non-stopword word occurrences, lowercased.
func keywordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range reWord.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		freq[w]++
	}
	return freq
}
