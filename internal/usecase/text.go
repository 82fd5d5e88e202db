package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for message normalization
var (
	multiSpacePattern = regexp.MustCompile(`\s+`)

	// Spelled-out quantities are rewritten to digits before any family runs
	spelledNumberPattern = regexp.MustCompile(`\b(one|two|three|four|five|a|an)\b`)

	trailingPunctuationPattern = regexp.MustCompile(`[\s.!?,;:]+$`)

	trailingCourtesyPattern = regexp.MustCompile(`\s+(please|pls|now|thanks|thank\s+you|too|as\s+well)$`)

	cartSuffixPattern = regexp.MustCompile(`\s+(to|in|into|from|on)\s+(my\s+|the\s+)?(cart|order|basket)$`)

	leadingFillerPattern = regexp.MustCompile(`^(the|some|of|my|quantity\s+of|quantities\s+of)\s+`)
)

var spelledNumbers = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"a": "1", "an": "1",
}

// itemStopWords are captures that can never name a menu item
var itemStopWords = map[string]bool{
	"me": true, "it": true, "that": true, "this": true, "some": true, "any": true,
	"help": true, "please": true, "thanks": true, "thank you": true, "them": true,
	"something": true, "anything": true, "more": true, "one": true,
}

// normalizeApostrophes folds typographic quotes into ASCII ones
func normalizeApostrophes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`).Replace(s)
}

// NormalizeMessage lowercases, collapses whitespace and rewrites the closed
// set of spelled-out quantities ("one".."five", "a", "an") to digits.
func NormalizeMessage(message string) string {
	s := strings.ToLower(normalizeApostrophes(message))
	s = multiSpacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return spelledNumberPattern.ReplaceAllStringFunc(s, func(w string) string {
		return spelledNumbers[w]
	})
}

// normalizePhrase lowercases and collapses whitespace without touching numbers
func normalizePhrase(s string) string {
	s = strings.ToLower(normalizeApostrophes(s))
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}

// cleanItemPhrase strips punctuation, courtesy words and cart references
// surrounding a captured item phrase.
func cleanItemPhrase(s string) string {
	s = normalizePhrase(s)
	for {
		before := s
		s = trailingPunctuationPattern.ReplaceAllString(s, "")
		s = trailingCourtesyPattern.ReplaceAllString(s, "")
		s = cartSuffixPattern.ReplaceAllString(s, "")
		s = leadingFillerPattern.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		if s == before {
			return s
		}
	}
}

// validItemPhrase reports whether a capture can plausibly name an item
func validItemPhrase(s string) bool {
	return len(s) >= 2 && !itemStopWords[s]
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// Similarity returns 1 - distance/max(len(a), len(b)), in [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(longest)
}

// squash removes spaces, hyphens and underscores
func squash(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// titleCase upper-cases the first letter and lower-cases the rest
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
