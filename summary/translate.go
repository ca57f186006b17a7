package summary

import (
	"strings"
	"unicode"
)

// urduWords maps common English words to Urdu. Words without an entry pass
// through unchanged, which keeps the transform total: the output is always a
// best-effort mixed rendering rather than an error.
//
// A real deployment would swap this for a translation service behind the
// same function signature.
var urduWords = map[string]string{
	"a": "ایک", "about": "کے بارے میں", "after": "بعد", "all": "تمام",
	"also": "بھی", "an": "ایک", "and": "اور", "are": "ہیں", "at": "پر",
	"be": "ہونا", "because": "کیونکہ", "but": "لیکن", "by": "کی طرف سے",
	"can": "سکتے ہیں", "day": "دن", "do": "کرنا", "first": "پہلا",
	"for": "کے لیے", "from": "سے", "good": "اچھا", "have": "ہے",
	"he": "وہ", "his": "اس کا", "how": "کیسے", "if": "اگر", "in": "میں",
	"is": "ہے", "it": "یہ", "make": "بنانا", "many": "بہت سے",
	"more": "زیادہ", "most": "سب سے زیادہ", "new": "نیا", "no": "نہیں",
	"not": "نہیں", "now": "اب", "of": "کا", "on": "پر", "one": "ایک",
	"or": "یا", "other": "دوسرے", "our": "ہمارا", "out": "باہر",
	"people": "لوگ", "she": "وہ", "so": "تو", "some": "کچھ",
	"that": "کہ", "the": "", "their": "ان کا", "there": "وہاں",
	"these": "یہ", "they": "وہ", "this": "یہ", "time": "وقت",
	"to": "کو", "up": "اوپر", "was": "تھا", "we": "ہم", "were": "تھے",
	"what": "کیا", "when": "جب", "which": "جو", "who": "کون",
	"will": "گا", "with": "کے ساتھ", "work": "کام", "world": "دنیا",
	"year": "سال", "you": "آپ", "your": "آپ کا",
}

// Translate renders English text in Urdu word-by-word using the built-in
// dictionary. Punctuation sticks to its word; whitespace structure is
// preserved. Pure and stateless.
func Translate(text string) string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		word := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		translated, ok := urduWords[strings.ToLower(word)]
		if !ok {
			out = append(out, f)
			continue
		}
		if translated == "" {
			// Words like articles with no Urdu counterpart drop out.
			continue
		}
		out = append(out, strings.Replace(f, word, translated, 1))
	}
	return strings.Join(out, " ")
}
