// Package freq counts word tokens and ranks them.
package freq

import "sort"

// Bounds for caller-chosen top-N lists.
const (
	MinTopN     = 5
	MaxTopN     = 50
	DefaultTopN = 20
)

// Entry is one word and its occurrence count.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequencies maps each distinct word to its count. First-appearance order is
// kept so rankings are deterministic; the value is immutable once built.
type Frequencies struct {
	counts map[string]int
	order  []string
	total  int
}

// Count builds Frequencies from a token sequence.
func Count(tokens []string) *Frequencies {
	f := &Frequencies{counts: make(map[string]int)}
	for _, tok := range tokens {
		if _, seen := f.counts[tok]; !seen {
			f.order = append(f.order, tok)
		}
		f.counts[tok]++
	}
	f.total = len(tokens)
	return f
}

// Get returns the count for word, 0 if absent.
func (f *Frequencies) Get(word string) int {
	return f.counts[word]
}

// Len returns the number of distinct words.
func (f *Frequencies) Len() int {
	return len(f.order)
}

// Total returns the sum of all counts, equal to the number of tokens counted.
func (f *Frequencies) Total() int {
	return f.total
}

// Words returns the distinct words in first-appearance order.
func (f *Frequencies) Words() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Map returns a copy of the word → count mapping.
func (f *Frequencies) Map() map[string]int {
	out := make(map[string]int, len(f.counts))
	for w, c := range f.counts {
		out[w] = c
	}
	return out
}

// MostCommon returns the n most frequent entries, highest count first. Ties
// keep first-appearance order. n <= 0 or n > Len() returns every entry.
func (f *Frequencies) MostCommon(n int) []Entry {
	entries := f.Entries()
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Entries returns the full table ranked as MostCommon does.
func (f *Frequencies) Entries() []Entry {
	entries := make([]Entry, len(f.order))
	for i, w := range f.order {
		entries[i] = Entry{Word: w, Count: f.counts[w]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// ClampTopN bounds n to [MinTopN, MaxTopN]; zero selects DefaultTopN.
func ClampTopN(n int) int {
	switch {
	case n == 0:
		return DefaultTopN
	case n < MinTopN:
		return MinTopN
	case n > MaxTopN:
		return MaxTopN
	}
	return n
}
