package search

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

const (
	// substringFloor is the minimum score when one name contains the other.
	substringFloor = 0.8
	// wordOverlapWeight scales the shared-word ratio into a score floor.
	wordOverlapWeight = 0.9
)

// Score returns how similar a query is to a candidate name, in [0, 1].
//
// The baseline is the sequence matcher ratio 2*M/T, where M is the number of
// characters in the matching blocks and T the total length of both strings.
// Containment in either direction lifts the score to at least 0.8; shared
// whole words lift it to at least 0.9 * shared / max(word counts).
//
// The floors are symmetric but the baseline is not: the matcher pairs blocks
// greedily from the first argument, so Score("bormio", "livigno") is 2/13
// while the reverse is 4/13. Callers pass the user query first.
func Score(query, candidate string) float64 {
	q := normalize(query)
	c := normalize(candidate)

	score := difflib.NewMatcher(chars(q), chars(c)).Ratio()

	if strings.Contains(c, q) || strings.Contains(q, c) {
		score = max(score, substringFloor)
	}

	qw := wordSet(q)
	cw := wordSet(c)
	shared := 0
	for w := range qw {
		if _, ok := cw[w]; ok {
			shared++
		}
	}
	if shared > 0 {
		overlap := float64(shared) / float64(max(len(qw), len(cw)))
		score = max(score, overlap*wordOverlapWeight)
	}

	return score
}

// normalize lower-cases and trims s. NFC makes composed and decomposed
// accents compare equal ("Sölden" typed either way).
func normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

// chars splits s into one element per rune, the unit the ratio counts.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
