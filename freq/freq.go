// Package freq derives character frequency statistics from digitized text,
// feeding the visualization layer of the application.
package freq

import (
	"sort"
	"unicode"
)

// Entry is one row of a frequency table.
type Entry struct {
	Char  rune
	Count int
}

// Analyze counts the letters and digits of text and returns them sorted by
// count descending. Case is preserved, so 'a' and 'A' are distinct keys.
// Non-alphanumeric characters, including whitespace and punctuation, are
// excluded. Characters with equal counts keep the order of their first
// occurrence in the input; map iteration order is not portable, so the
// first-seen position is tracked explicitly.
func Analyze(text string) []Entry {
	counts := make(map[rune]int)
	firstSeen := make(map[rune]int)
	pos := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pos++
			continue
		}
		if _, ok := counts[r]; !ok {
			firstSeen[r] = pos
		}
		counts[r]++
		pos++
	}

	entries := make([]Entry, 0, len(counts))
	for r, n := range counts {
		entries = append(entries, Entry{Char: r, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Char] < firstSeen[entries[j].Char]
	})
	return entries
}
