package nlp

import (
	"strings"
	"unicode"
)

// Typographic replacement characters.
const (
	openDouble  = '“' // “
	closeDouble = '”' // ”
	openSingle  = '‘' // ‘
	closeSingle = '’' // ’
)

// terminalPunctuation are the characters that end a sentence-like line.
const terminalPunctuation = ".!?:;"

// punctuationExemptSuffixes are trailing characters that exempt a line
// from punctuation insertion: a closing parenthesis or any quote or
// backtick character.
const punctuationExemptSuffixes = ")\"'”’`"

// smartQuotes converts straight quotes to curly quotes. A quote opens
// when it follows start-of-text, whitespace, or an opening bracket;
// otherwise it closes. Apostrophes inside words therefore come out as
// right single quotes.
func smartQuotes(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	prev := rune(0)
	for _, r := range text {
		switch r {
		case '"':
			if opensQuote(prev) {
				b.WriteRune(openDouble)
			} else {
				b.WriteRune(closeDouble)
			}
		case '\'':
			if opensQuote(prev) {
				b.WriteRune(openSingle)
			} else {
				b.WriteRune(closeSingle)
			}
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	return b.String()
}

// opensQuote reports whether a quote after prev starts quoted text.
func opensQuote(prev rune) bool {
	if prev == 0 || unicode.IsSpace(prev) {
		return true
	}
	switch prev {
	case '(', '[', '{':
		return true
	default:
		return false
	}
}

// ensurePunctuation appends a period when the text does not already end
// in terminal punctuation and is not exempt (quoted or parenthesized
// endings, ellipsis, em-dash).
func ensurePunctuation(text string) string {
	trimmed := strings.TrimRight(text, " \t")
	if trimmed == "" {
		return text
	}

	last := trimmed[len(trimmed)-1]
	if strings.ContainsRune(terminalPunctuation, rune(last)) {
		return text
	}

	lastRune := lastRuneOf(trimmed)
	if strings.ContainsRune(punctuationExemptSuffixes, lastRune) {
		return text
	}
	if lastRune == '…' || lastRune == '—' {
		return text
	}

	return trimmed + "."
}

// lastRuneOf returns the final rune of a non-empty string.
func lastRuneOf(s string) rune {
	runes := []rune(s)
	return runes[len(runes)-1]
}
