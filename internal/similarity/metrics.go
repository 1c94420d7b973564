// Package similarity detects existing companies whose names could be confused
// with a candidate brand name.
package similarity

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// phoneticReplacements are applied in order; later rules see the output of
// earlier ones.
var phoneticReplacements = [][2]string{
	{"ph", "f"},
	{"ck", "k"},
	{"gh", "g"},
	{"kn", "n"},
	{"wr", "r"},
	{"wh", "w"},
	{"ee", "i"},
	{"ea", "i"},
	{"oo", "u"},
	{"ou", "u"},
	{"ai", "a"},
	{"ay", "a"},
	{"ey", "i"},
	{"ie", "i"},
	{"y", "i"},
}

// EditDistance returns the Levenshtein distance between a and b, counted in
// runes with unit insert, delete and substitute costs.
func EditDistance(a, b string) int {
	return fuzzy.LevenshteinDistance(a, b)
}

// PhoneticKey returns an approximate sound-alike signature for s. It is a
// literal substitution bucket, not a phonetic transcription.
func PhoneticKey(s string) string {
	key := strings.ToLower(s)
	for _, r := range phoneticReplacements {
		key = strings.ReplaceAll(key, r[0], r[1])
	}

	runes := []rune(key)
	if len(runes) <= 1 {
		return key
	}

	var b strings.Builder
	b.WriteRune(runes[0])
	for _, c := range runes[1:] {
		if isVowel(c) {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// SharedPrefixRatio is the length of the longest common prefix of a and b
// divided by the longer length. Zero when either is empty.
func SharedPrefixRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return float64(n) / float64(max(len(ra), len(rb)))
}

func isVowel(c rune) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
