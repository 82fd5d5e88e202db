package usecase

import (
	"testing"
)

func TestNormalizeMessage(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and collapses whitespace", "  Add   2 PIZZAS ", "add 2 pizzas"},
		{"spelled quantities become digits", "add two tiramisu and one coke", "add 2 tiramisu and 1 coke"},
		{"articles become 1", "can I have a coke and an orange juice", "can i have 1 coke and 1 orange juice"},
		{"only whole words are replaced", "someone wants a bone", "someone wants 1 bone"},
		{"typographic apostrophe", "what’s in my cart", "what's in my cart"},
		{"empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeMessage(tc.input)
			if got != tc.want {
				t.Errorf("NormalizeMessage(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanItemPhrase(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"margherita pizza please", "margherita pizza"},
		{"caesar salad to my cart please!", "caesar salad"},
		{"the tiramisu now.", "tiramisu"},
		{"some garlic bread", "garlic bread"},
		{"pepperoni pizza from the cart", "pepperoni pizza"},
		{"quantity of coca cola", "coca cola"},
		{"Orange Juice, thanks", "orange juice"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := cleanItemPhrase(tc.input)
			if got != tc.want {
				t.Errorf("cleanItemPhrase(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestValidItemPhrase(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"tiramisu", true},
		{"x", false},
		{"", false},
		{"me", false},
		{"it", false},
		{"please", false},
		{"thank you", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := validItemPhrase(tc.input); got != tc.want {
				t.Errorf("validItemPhrase(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	testCases := []struct {
		s1   string
		s2   string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"abc", "abc", 0},
		{"abc", "abd", 1},        // substitution
		{"abc", "abcd", 1},       // insertion
		{"abcd", "abc", 1},       // deletion
		{"kitten", "sitting", 3}, // classic example
		{"tiramsu", "tiramisu", 1},
		{"piza", "pizza", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.s1+"_"+tc.s2, func(t *testing.T) {
			got := levenshteinDistance(tc.s1, tc.s2)
			if got != tc.want {
				t.Errorf("levenshteinDistance(%q, %q) = %v, want %v", tc.s1, tc.s2, got, tc.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		if got := Similarity("tiramisu", "tiramisu"); got != 1 {
			t.Errorf("Similarity = %v, want 1", got)
		}
	})

	t.Run("empty strings", func(t *testing.T) {
		if got := Similarity("", ""); got != 1 {
			t.Errorf("Similarity = %v, want 1", got)
		}
	})

	t.Run("one edit in eight", func(t *testing.T) {
		if got := Similarity("tiramsu", "tiramisu"); got != 0.875 {
			t.Errorf("Similarity = %v, want 0.875", got)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"kitten", "sitting"},
			{"coke", "coca cola"},
			{"", "pizza"},
			{"margarita pizza", "margherita pizza"},
			{"fish & chips", "fish and chips"},
		}
		for _, p := range pairs {
			if a, b := Similarity(p[0], p[1]), Similarity(p[1], p[0]); a != b {
				t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], a, b)
			}
		}
	})
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"sam", "Sam"},
		{"SAM", "Sam"},
		{"o'neil", "O'neil"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := titleCase(tc.input); got != tc.want {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
