// Package transliterate reduces arbitrary UTF-8 input to a lowercase,
// accent-free, punctuation-free, Latin-script form suitable for indexing
// and matching. It mirrors the original implementation's OTransliterator,
// exposing each of its four sub-transformations individually as well as
// the fixed-order composition used everywhere else in the search stack.
package transliterate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/anyascii/go"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnicodeInitError is returned by New when the underlying Unicode
// transform chain cannot be constructed. It is fatal at process start:
// callers should not attempt to run the search stack without a working
// Transliterator.
type UnicodeInitError struct {
	Reason string
}

func (e *UnicodeInitError) Error() string {
	return fmt.Sprintf("transliterate: unicode initialization failed: %s", e.Reason)
}

// Transliterator holds the reusable, allocation-free pieces of the
// normalization chain (the x/text transformer). It is constructed once at
// service start and shared by every request.
type Transliterator struct {
	stripMarks transform.Transformer
}

// New builds a Transliterator. It returns *UnicodeInitError if the
// combining-mark removal transform cannot be built.
func New() (*Transliterator, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if t == nil {
		return nil, &UnicodeInitError{Reason: "nil NFD/NFC transform chain"}
	}
	return &Transliterator{stripMarks: t}, nil
}

// quoteFolds maps quote-like runes to their plain-ASCII replacement, per
// spec: U+02B9 (MODIFIER LETTER PRIME) folds to an apostrophe, U+0027
// (APOSTROPHE) folds to a space (K_ICU_QUOTATION_REMOVAL_RULE), U+002D
// (HYPHEN-MINUS) folds to a space.
var quoteFolds = map[rune]rune{
	'ʹ':  '\'',
	'\'': ' ',
}

// FoldQuotes replaces quote-like characters with their canonical ASCII
// stand-ins, and hyphens with spaces.
func (t *Transliterator) FoldQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '-':
			b.WriteRune(' ')
		default:
			if repl, ok := quoteFolds[r]; ok {
				b.WriteRune(repl)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// StripAccents removes Unicode combining marks via NFD decomposition
// followed by NFC recomposition, leaving base letters intact.
func (t *Transliterator) StripAccents(s string) string {
	out, _, err := transform.String(t.stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// RemovePunctuation drops every rune classified as Unicode punctuation.
func (t *Transliterator) RemovePunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TransliterateScript converts non-Latin scripts (Cyrillic, CJK, Greek,
// Arabic, ...) to their closest Latin-alphabet rendering, then re-applies
// accent stripping and lowercasing so the result is directly comparable to
// a plain ASCII query.
func (t *Transliterator) TransliterateScript(s string) string {
	latin := anyascii.Transliterate(s)
	return strings.ToLower(t.StripAccents(latin))
}

// Normalize applies the full fixed-order pipeline required by spec:
// NFD+mark-removal+NFC, quote/hyphen folding, punctuation removal, script
// transliteration to Latin with a final accent-strip+lowercase. The result
// is idempotent: Normalize(Normalize(s)) == Normalize(s).
func (t *Transliterator) Normalize(s string) string {
	s = t.StripAccents(s)
	s = t.FoldQuotes(s)
	s = t.RemovePunctuation(s)
	s = t.TransliterateScript(s)
	return s
}
