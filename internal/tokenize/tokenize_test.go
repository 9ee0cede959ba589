package tokenize_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/dgallion1/docfreq/internal/tokenize"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "only stopwords", input: "The and of a", want: nil},
		{name: "lowercases and drops stopwords", input: "The Quick brown Fox", want: []string{"quick", "brown", "fox"}},
		{name: "keeps order and duplicates", input: "cat dog cat", want: []string{"cat", "dog", "cat"}},
		{name: "sentence punctuation split off", input: "Hello, world. Hello again!", want: []string{"hello", "world", "hello"}},
		{name: "brackets and quotes", input: `("quoted") [bracketed] {braced}`, want: []string{"quoted", "bracketed", "braced"}},
		{name: "interior punctuation dropped", input: "well-known e.g. 3.14 U.S. and/or", want: nil},
		{name: "numbers kept", input: "In 2024 we shipped 42 units", want: []string{"2024", "shipped", "42", "units"}},
		{name: "thousands separator stays joined", input: "1,000 items", want: []string{"items"}},
		{name: "contractions split", input: "Don't panic, it's Bob's towel", want: []string{"panic", "bob", "towel"}},
		{name: "can't and won't", input: "Robots can't and won't stop", want: []string{"robots", "stop"}},
		{name: "typographic apostrophe", input: "Alice’s garden isn’t small", want: []string{"alice", "garden", "small"}},
		{name: "trailing possessive", input: "the students' books", want: []string{"students", "books"}},
		{name: "dashes and ellipses", input: "wait--what...really…yes", want: []string{"wait", "really", "yes"}},
		{name: "unicode letters", input: "Café ÜBER naïve", want: []string{"café", "über", "naïve"}},
		{name: "symbols separate", input: "cost: $5 & 10% off #tag @user", want: []string{"cost", "5", "10", "tag", "user"}},
		{name: "cannot splits into stopwords", input: "We cannot proceed", want: []string{"proceed"}},
		{name: "fused informal words split", input: "gonna wanna gotta", want: []string{"gon", "na", "wan", "na", "got", "ta"}},
		{name: "gimme and lemme", input: "Gimme that, lemme see", want: []string{"gim", "lem", "see"}},
		{name: "abbreviations dropped", input: "Mr. Smith met Dr. Jones", want: []string{"smith", "met", "jones"}},
		{name: "abbreviation mid list", input: "apples, pears, etc. were sold", want: []string{"apples", "pears", "sold"}},
		{name: "colon time stays joined", input: "meet at 10:30 today", want: []string{"meet", "today"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tokenize.Tokenize(tt.input))
		})
	}
}

func TestTokenize_DecomposedAccentsSurvive(t *testing.T) {
	// "café" with a combining acute accent (NFD form).
	got := tokenize.Tokenize("cafe\u0301")
	require.Equal(t, []string{"caf\u00e9"}, got)
}

func TestTokenizer_Reusable(t *testing.T) {
	tk := tokenize.New()
	require.Equal(t, []string{"alpha"}, tk.Tokenize("ALPHA"))
	require.Equal(t, []string{"beta"}, tk.Tokenize("Beta"))
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"the", "and", "don", "shouldn", "ve", "y"} {
		require.True(t, tokenize.IsStopword(w), w)
	}
	for _, w := range []string{"The", "cat", "analysis"} {
		require.False(t, tokenize.IsStopword(w), w)
	}
}

func TestStopwords_SortedCopy(t *testing.T) {
	words := tokenize.Stopwords()
	require.NotEmpty(t, words)
	require.IsIncreasing(t, words)

	words[0] = "mutated"
	require.NotEqual(t, "mutated", tokenize.Stopwords()[0])
}

func FuzzTokenize(f *testing.F) {
	for _, seed := range []string{
		"The quick brown fox jumps over the lazy dog.",
		"Don't stop-believing; it's 10:30!",
		"ÅNGSTRÖM «quoted» naïve—test",
		"\xff\xfe invalid utf8",
		"İSTANBUL ϒ",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, text string) {
		for _, tok := range tokenize.Tokenize(text) {
			if tok == "" {
				t.Fatalf("empty token from %q", text)
			}
			for _, r := range tok {
				if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
					t.Fatalf("non-alphanumeric token %q from %q", tok, text)
				}
			}
			if strings.ToLower(tok) != tok {
				t.Fatalf("token %q from %q is not lowercase", tok, text)
			}
			if tokenize.IsStopword(tok) {
				t.Fatalf("stopword %q survived from %q", tok, text)
			}
		}
	})
}
