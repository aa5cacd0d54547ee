package search

import (
	"strings"
	"unicode"
)

// Score bands. The ladder is gated: the first applicable rule wins, so an
// exact match always outranks a prefix match, a prefix match outranks a
// word-start match, and so on down to the subsequence fallback.
const (
	scoreExact     = 10000
	scorePrefix    = 9000
	scoreWordStart = 8000
	scoreSubstring = 7000
	scoreAbbrev    = 6000
)

// isBoundary reports whether r separates words in a target name.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '.'
}

// Score rates target against query through the scoring ladder.
// The boolean reports whether any rule matched; unmatched targets are
// excluded from results entirely. Matching is case-insensitive.
func Score(target, query string) (int, bool) {
	if query == "" {
		return 0, false
	}

	t := strings.ToLower(target)
	q := strings.ToLower(query)

	// Rule 1: exact match.
	if t == q {
		return scoreExact, true
	}

	// Rule 2: prefix match; shorter targets rank slightly higher.
	if strings.HasPrefix(t, q) {
		return scorePrefix + lengthBonus(target), true
	}

	// Rule 3: word-start match; earlier words score higher.
	if idx, ok := wordStartIndex(target, q); ok {
		return scoreWordStart + (100 - 10*idx), true
	}

	// Rule 4: substring anywhere.
	if strings.Contains(t, q) {
		return scoreSubstring + lengthBonus(target), true
	}

	// Rule 5: abbreviation against the target's initials.
	initials := initialsOf(target)
	switch {
	case initials == q:
		return scoreAbbrev + 200, true
	case strings.HasPrefix(initials, q):
		return scoreAbbrev + 150, true
	case isSubsequence(q, initials):
		return scoreAbbrev + 100, true
	}

	// Rule 6: greedy subsequence scan.
	return subsequenceScore(target, q)
}

// lengthBonus rewards shorter targets within a band.
func lengthBonus(target string) int {
	n := len([]rune(target))
	if n > 100 {
		n = 100
	}
	return 100 - n
}

// wordStartIndex reports the index of the first word of target, split on
// boundary characters, that query is a prefix of.
func wordStartIndex(target, q string) (int, bool) {
	words := strings.FieldsFunc(target, isBoundary)
	for i, w := range words {
		if strings.HasPrefix(strings.ToLower(w), q) {
			return i, true
		}
	}
	return 0, false
}

// initialsOf builds the abbreviation string for a target: one character per
// word boundary and per camel-case transition (lowercase immediately
// followed by uppercase), lowercased.
func initialsOf(target string) string {
	var b strings.Builder
	runes := []rune(target)
	takeNext := true
	for i, r := range runes {
		if isBoundary(r) {
			takeNext = true
			continue
		}
		if takeNext {
			b.WriteRune(unicode.ToLower(r))
			takeNext = false
			continue
		}
		if i > 0 && unicode.IsLower(runes[i-1]) && unicode.IsUpper(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// isSubsequence reports whether every character of q appears in s in order.
func isSubsequence(q, s string) bool {
	if q == "" {
		return true
	}
	qr := []rune(q)
	j := 0
	for _, r := range s {
		if r == qr[j] {
			j++
			if j == len(qr) {
				return true
			}
		}
	}
	return false
}

// subsequenceScore runs the greedy left-to-right subsequence scan: the
// first qualifying position per query character is taken, not a globally
// optimal alignment. Returns no match when any character is unmatched.
func subsequenceScore(target, q string) (int, bool) {
	origRunes := []rune(target)
	lowRunes := []rune(strings.ToLower(target))
	qRunes := []rune(q)

	positions := make([]int, 0, len(qRunes))
	next := 0
	for _, qc := range qRunes {
		found := -1
		for i := next; i < len(lowRunes); i++ {
			if lowRunes[i] == qc {
				found = i
				break
			}
		}
		if found < 0 {
			return 0, false
		}
		positions = append(positions, found)
		next = found + 1
	}

	score := 10 * len(qRunes)

	for i, p := range positions {
		if i > 0 && p == positions[i-1]+1 {
			score += 15
		}
		switch {
		case p == 0:
			score += 20
		case isBoundary(origRunes[p-1]):
			score += 15
		case unicode.IsUpper(origRunes[p]):
			score += 10
		}
	}

	if bonus := 20 - positions[0]; bonus > 0 {
		score += bonus
	}

	for i := 1; i < len(positions); i++ {
		gap := positions[i] - positions[i-1] - 1
		if gap > 3 {
			score -= gap
		}
	}

	score -= len(origRunes) / 5

	if score < 1 {
		score = 1
	}
	return score, true
}
