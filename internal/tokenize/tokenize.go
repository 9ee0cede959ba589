// Package tokenize turns extracted text into normalized English word tokens.
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text the way a Treebank-style word tokenizer does, then
// keeps lowercase alphanumeric words outside the stopword set. It holds a
// stateful case mapper and must not be shared between goroutines.
type Tokenizer struct {
	lower cases.Caser
}

// New returns a Tokenizer using English case rules.
func New() *Tokenizer {
	return &Tokenizer{lower: cases.Lower(language.English)}
}

// Tokenize runs a fresh Tokenizer over text.
func Tokenize(text string) []string {
	return New().Tokenize(text)
}

// Tokenize returns tokens in order of appearance, duplicates retained.
func (t *Tokenizer) Tokenize(text string) []string {
	text = norm.NFC.String(text)

	var tokens []string
	for _, field := range strings.FieldsFunc(text, isSeparator) {
		for _, piece := range splitPunct(field) {
			for _, word := range splitContraction(piece) {
				if !isAlnum(word) {
					continue
				}
				// Lowercasing can introduce combining marks (İ -> i̇).
				word = strings.Map(dropMarks, t.lower.String(word))
				if word == "" || IsStopword(word) {
					continue
				}
				tokens = append(tokens, word)
			}
		}
	}
	return tokens
}

// isSeparator reports runes that always end a token: whitespace, and the
// punctuation a Treebank tokenizer splits off unconditionally.
func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ';', '@', '#', '$', '%', '&', '?', '!',
		'(', ')', '[', ']', '{', '}', '<', '>',
		'"', '`', '“', '”', '„', '«', '»', '‹', '›', '‘':
		return true
	}
	return false
}

var dashes = strings.NewReplacer("--", " ", "...", " ", "…", " ", "—", " ", "–", " ")

// splitPunct breaks a field on dashes, ellipses, and on commas or colons not
// followed by a digit ("1,000" and "10:30" stay whole), then trims quotes and
// sentence-final periods from each piece.
func splitPunct(field string) []string {
	field = dashes.Replace(field)

	var out []string
	runes := []rune(field)
	start := 0
	for i, r := range runes {
		split := r == ' '
		if r == ',' || r == ':' {
			split = i+1 >= len(runes) || !unicode.IsDigit(runes[i+1])
		}
		if split {
			out = appendPiece(out, runes[start:i])
			start = i + 1
		}
	}
	return appendPiece(out, runes[start:])
}

func appendPiece(out []string, rs []rune) []string {
	s := strings.TrimLeft(string(rs), "'’")
	bare := strings.TrimRight(s, "'’")
	if strings.HasSuffix(bare, ".") && isAbbreviation(bare) {
		return out
	}
	s = strings.TrimRight(s, ".'’")
	if s != "" {
		out = append(out, s)
	}
	return out
}

// Abbreviations that keep their period mid-sentence, so the piece never
// passes the alphanumeric filter.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "rev": {}, "gen": {},
	"sen": {}, "rep": {}, "gov": {}, "capt": {}, "col": {}, "lt": {}, "sgt": {},
	"st": {}, "jr": {}, "sr": {}, "vs": {}, "etc": {}, "inc": {}, "ltd": {},
	"co": {}, "corp": {}, "dept": {}, "univ": {}, "approx": {}, "fig": {},
	"no": {}, "vol": {}, "pp": {}, "ed": {}, "eds": {}, "jan": {}, "feb": {},
	"mar": {}, "apr": {}, "jun": {}, "jul": {}, "aug": {}, "sep": {},
	"sept": {}, "oct": {}, "nov": {}, "dec": {},
}

func isAbbreviation(s string) bool {
	_, ok := abbreviations[strings.ToLower(strings.TrimRight(s, "."))]
	return ok
}

var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// Stems the tokenizer leaves behind when splitting n't.
var negStems = map[string]string{
	"ca":  "can",
	"wo":  "will",
	"sha": "shall",
}

// Whole words a Treebank tokenizer splits in two, keyed by the lowercase
// word; the value is the byte length of the first part.
var fused = map[string]int{
	"cannot": 3, // can not
	"gimme":  3, // gim me
	"gonna":  3, // gon na
	"gotta":  3, // got ta
	"lemme":  3, // lem me
	"wanna":  3, // wan na
	"d'ye":   1, // d 'ye
	"more'n": 4, // more 'n
}

// splitContraction separates an English clitic suffix from its stem.
func splitContraction(piece string) []string {
	runes := []rune(piece)
	folded := strings.ToLower(strings.ReplaceAll(piece, "’", "'"))
	if n, ok := fused[folded]; ok && len(folded) == len(piece) {
		return []string{piece[:n], piece[n:]}
	}
	for _, c := range clitics {
		// Clitics are ASCII, so their rune count is their byte length.
		if len(runes) <= len(c) || !strings.HasSuffix(folded, c) {
			continue
		}
		stem := string(runes[:len(runes)-len(c)])
		if c == "n't" {
			if full, ok := negStems[strings.ToLower(stem)]; ok {
				stem = full
			}
		}
		return []string{stem, c}
	}
	return []string{piece}
}

func dropMarks(r rune) rune {
	if unicode.Is(unicode.Mn, r) {
		return -1
	}
	return r
}

// isAlnum matches Python's str.isalnum: non-empty, every rune a letter or number.
func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
