package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bellavista/orderbot/internal/domain"
)

// categoryKeywords maps the words users type to catalog category labels.
// Multi-word keys come first so they win in the alternation.
var categoryKeywords = []struct {
	pattern  string
	category string
}{
	{`main\s+courses?`, "Main Courses"},
	{`entrees?`, "Main Courses"},
	{`pizzas?`, "Pizza"},
	{`pastas?`, "Pasta"},
	{`salads?`, "Salads"},
	{`desserts?`, "Desserts"},
	{`beverages?`, "Beverages"},
	{`drinks?`, "Beverages"},
	{`appetizers?`, "Appetizers"},
	{`starters?`, "Appetizers"},
	{`seafood`, "Seafood"},
}

var (
	categoryKeywordPatterns []*regexp.Regexp

	// "2 pizzas", "3 more drinks"
	quantityCategoryPattern *regexp.Regexp

	// "pizza with more 2 items"
	categoryWithMorePattern *regexp.Regexp

	// any category keyword as a whole word
	categoryMentionPattern *regexp.Regexp
)

func init() {
	alternation := ""
	for i, k := range categoryKeywords {
		if i > 0 {
			alternation += "|"
		}
		alternation += k.pattern
		categoryKeywordPatterns = append(categoryKeywordPatterns, regexp.MustCompile(`^(?:`+k.pattern+`)$`))
	}
	quantityCategoryPattern = regexp.MustCompile(`\b(\d+)\s+(?:more\s+)?(` + alternation + `)\b`)
	categoryWithMorePattern = regexp.MustCompile(`\b(` + alternation + `)\s+with\s+more\s+(\d+)(?:\s+items?)?\b`)
	categoryMentionPattern = regexp.MustCompile(`\b(?:` + alternation + `)\b`)
}

// categoryFor maps a matched keyword to its category label
func categoryFor(keyword string) (string, bool) {
	for i, p := range categoryKeywordPatterns {
		if p.MatchString(keyword) {
			return categoryKeywords[i].category, true
		}
	}
	return "", false
}

// findCategoryQuantities returns every (category, quantity) pair in text, merging
// repeated categories by summing and keeping first-seen order.
// Pairs whose quantity fails to parse or is not positive are skipped, as are
// keywords that open a longer item name ("2 seafood platter").
func findCategoryQuantities(text string, itemNames []string) []domain.CategoryQuantity {
	var pairs []domain.CategoryQuantity
	index := make(map[string]int)

	add := func(keyword, qty string) {
		n, err := strconv.Atoi(qty)
		if err != nil || n <= 0 {
			return
		}
		category, ok := categoryFor(keyword)
		if !ok {
			return
		}
		if i, seen := index[category]; seen {
			pairs[i].Quantity += n
			return
		}
		index[category] = len(pairs)
		pairs = append(pairs, domain.CategoryQuantity{Category: category, Quantity: n})
	}

	for _, m := range quantityCategoryPattern.FindAllStringSubmatchIndex(text, -1) {
		if startsItemName(text[m[4]:], itemNames) {
			continue
		}
		add(text[m[4]:m[5]], text[m[2]:m[3]])
	}
	for _, m := range categoryWithMorePattern.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}
	return pairs
}

// startsItemName reports whether text begins with a multi-word item name
func startsItemName(text string, itemNames []string) bool {
	for _, name := range itemNames {
		lower := strings.ToLower(name)
		if strings.Contains(lower, " ") && strings.HasPrefix(text, lower) {
			return true
		}
	}
	return false
}

// mentionsCategory reports whether text names any category keyword
func mentionsCategory(text string) bool {
	return categoryMentionPattern.MatchString(text)
}
