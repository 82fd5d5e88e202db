package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/bellavista/orderbot/internal/domain"
)

// MatchTier names the resolution strategy that produced a match
type MatchTier string

const (
	TierExact           MatchTier = "exact"
	TierVariation       MatchTier = "variation"
	TierPrefix          MatchTier = "prefix"
	TierContains        MatchTier = "contains"
	TierReverseContains MatchTier = "reverse_contains"
	TierWordOverlap     MatchTier = "word_overlap"
	TierNormalized      MatchTier = "normalized"
	TierSynonym         MatchTier = "synonym"
	TierFuzzy           MatchTier = "fuzzy"
	TierFallback        MatchTier = "fallback"
)

// defaultFuzzyThreshold is the minimum similarity accepted by the fuzzy tier (exclusive)
const defaultFuzzyThreshold = 0.70

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Match is a resolved catalog entry and the tier that found it
type Match struct {
	Entry domain.CatalogEntry
	Tier  MatchTier
}

type synonym struct {
	key   string
	names []string
}

// synonyms maps common aliases to candidate canonical names, tried in order
var synonyms = []synonym{
	{"garden salad", []string{"Garden Salad", "Fresh Garden Salad", "Mixed Garden Salad", "House Salad"}},
	{"garden salads", []string{"Garden Salad", "Fresh Garden Salad", "Mixed Garden Salad"}},
	{"garden", []string{"Garden Salad", "Fresh Garden Salad"}},
	{"greek salad", []string{"Greek Salad", "Mediterranean Salad"}},
	{"greek salads", []string{"Greek Salad", "Mediterranean Salad"}},
	{"caesar salad", []string{"Caesar Salad", "Chicken Caesar Salad", "Classic Caesar"}},
	{"caesar salads", []string{"Caesar Salad", "Chicken Caesar Salad"}},
	{"margherita pizza", []string{"Margherita Pizza", "Margherita", "Classic Margherita"}},
	{"margherita", []string{"Margherita Pizza", "Classic Margherita"}},
	{"pepperoni pizza", []string{"Pepperoni Pizza", "Pepperoni"}},
	{"pepperoni", []string{"Pepperoni Pizza"}},
	{"coke", []string{"Coca Cola", "Coke", "Coca-Cola"}},
	{"coca cola", []string{"Coca Cola", "Coke"}},
	{"pepsi", []string{"Pepsi", "Pepsi Cola"}},
	{"orange juice", []string{"Orange Juice", "Fresh Orange Juice", "Orange Juice Can"}},
	{"orange", []string{"Orange Juice", "Fresh Orange Juice"}},
	{"apple juice", []string{"Apple Juice", "Apple Juice Can", "Fresh Apple Juice"}},
	{"apple", []string{"Apple Juice", "Apple Juice Can"}},
	{"water", []string{"Water", "Water Bottle", "Still Water"}},
	{"water bottle", []string{"Water Bottle", "Water"}},
	{"spaghetti", []string{"Spaghetti Carbonara", "Spaghetti", "Spaghetti Bolognese"}},
	{"pasta", []string{"Spaghetti Carbonara", "Penne Arrabbiata", "Fettuccine Alfredo"}},
	{"carbonara", []string{"Spaghetti Carbonara"}},
	{"alfredo", []string{"Fettuccine Alfredo"}},
	{"fish and chips", []string{"Fish and Chips", "Fish & Chips", "Beer Battered Fish"}},
	{"fish", []string{"Fish and Chips", "Grilled Salmon", "Seafood Platter"}},
	{"salmon", []string{"Grilled Salmon", "Atlantic Salmon"}},
	{"chocolate cake", []string{"Chocolate Cake", "Rich Chocolate Cake", "Dark Chocolate Cake"}},
	{"cake", []string{"Chocolate Cake", "Cheesecake", "Rich Chocolate Cake"}},
	{"ice cream", []string{"Ice Cream", "Vanilla Ice Cream", "Chocolate Ice Cream"}},
	{"tiramisu", []string{"Tiramisu", "Classic Tiramisu"}},
}

// ResolverConfig holds configuration for the catalog resolver
type ResolverConfig struct {
	FuzzyThreshold float64
	Logger         *zap.Logger
	Recorder       Recorder
}

// Resolver maps a free-text phrase to a single catalog entry.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	fuzzyThreshold float64
	logger         *zap.Logger
	recorder       Recorder
}

// NewResolver creates a resolver with the given configuration
func NewResolver(config ResolverConfig) *Resolver {
	threshold := config.FuzzyThreshold
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultFuzzyThreshold
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		fuzzyThreshold: threshold,
		logger:         logger,
		recorder:       recorderOrNop(config.Recorder),
	}
}

// ResolveSnapshot resolves against a snapshot, switching to the static
// fallback names when the snapshot is degraded.
func (r *Resolver) ResolveSnapshot(phrase string, snap domain.Snapshot) (Match, bool) {
	if snap.Degraded {
		return r.ResolveFallback(phrase, snap.FallbackNames)
	}
	return r.Resolve(phrase, snap.Entries)
}

// Resolve returns the best available entry for phrase, or false when no tier matches.
// Tiers run from cheapest and most precise to fuzzy; the first success wins.
func (r *Resolver) Resolve(phrase string, catalog []domain.CatalogEntry) (Match, bool) {
	term := normalizePhrase(phrase)
	if term == "" {
		return Match{}, false
	}

	items := make([]candidate, 0, len(catalog))
	for _, e := range catalog {
		lower := normalizePhrase(e.Name)
		// A blank name would prefix-match every phrase
		if e.Available && lower != "" {
			items = append(items, candidate{entry: e, lower: lower})
		}
	}
	if len(items) == 0 {
		return Match{}, false
	}

	tiers := []struct {
		tier MatchTier
		find func(string, []candidate) (int, bool)
	}{
		{TierExact, matchExact},
		{TierVariation, matchVariation},
		{TierPrefix, matchPrefix},
		{TierContains, matchContains},
		{TierReverseContains, matchReverseContains},
		{TierWordOverlap, matchWordOverlap},
		{TierNormalized, matchNormalized},
		{TierSynonym, matchSynonym},
		{TierFuzzy, r.matchFuzzy},
	}

	for _, t := range tiers {
		if idx, ok := t.find(term, items); ok {
			r.logger.Debug("resolved item",
				zap.String("phrase", term),
				zap.String("tier", string(t.tier)),
				zap.String("name", items[idx].entry.Name),
			)
			r.recorder.Resolution(string(t.tier))
			return Match{Entry: items[idx].entry, Tier: t.tier}, true
		}
	}

	r.logger.Debug("no catalog match", zap.String("phrase", term))
	r.recorder.Resolution("none")
	return Match{}, false
}

// ResolveFallback does plain case-insensitive matching over a static name list:
// exact first, then substring in either direction. The entry carries the placeholder price.
func (r *Resolver) ResolveFallback(phrase string, names []string) (Match, bool) {
	term := normalizePhrase(phrase)
	if term == "" {
		return Match{}, false
	}

	pick := func(name string) (Match, bool) {
		r.logger.Debug("resolved item from fallback menu", zap.String("phrase", term), zap.String("name", name))
		r.recorder.Resolution(string(TierFallback))
		return Match{Entry: placeholderEntry(name), Tier: TierFallback}, true
	}

	for _, name := range names {
		if strings.ToLower(name) == term {
			return pick(name)
		}
	}
	for _, name := range names {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "" {
			continue
		}
		if strings.Contains(lower, term) || strings.Contains(term, lower) {
			return pick(name)
		}
	}

	r.recorder.Resolution("none")
	return Match{}, false
}

// placeholderEntry builds a catalog entry for a fallback name with a stable id
func placeholderEntry(name string) domain.CatalogEntry {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	return domain.CatalogEntry{
		ID:        "fallback-" + slug,
		Name:      name,
		Price:     domain.PlaceholderPrice,
		Available: true,
	}
}

type candidate struct {
	entry domain.CatalogEntry
	lower string
}

func matchExact(term string, items []candidate) (int, bool) {
	for i, c := range items {
		if c.lower == term {
			return i, true
		}
	}
	return 0, false
}

// phraseVariations returns singular/plural forms of the trailing word and
// the salad/salads spellings of term.
func phraseVariations(term string) []string {
	words := strings.Fields(term)
	head := strings.Join(words[:len(words)-1], " ")
	last := words[len(words)-1]

	var tails []string
	switch {
	case strings.HasSuffix(last, "es") && len(last) > 3:
		tails = append(tails, strings.TrimSuffix(last, "es"), strings.TrimSuffix(last, "s"))
	case strings.HasSuffix(last, "s") && len(last) > 2:
		tails = append(tails, strings.TrimSuffix(last, "s"))
	default:
		tails = append(tails, last+"s", last+"es")
	}

	var variations []string
	for _, tail := range tails {
		if head == "" {
			variations = append(variations, tail)
		} else {
			variations = append(variations, head+" "+tail)
		}
	}

	switch {
	case strings.Contains(term, "salads"):
		variations = append(variations, strings.ReplaceAll(term, "salads", "salad"))
	case strings.Contains(term, "salad"):
		variations = append(variations, strings.ReplaceAll(term, "salad", "salads"))
	default:
		variations = append(variations, term+" salad")
	}
	bare := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(term, " salads", ""), " salad", ""))
	if bare != "" {
		variations = append(variations, bare+" salad")
	}
	return variations
}

func matchVariation(term string, items []candidate) (int, bool) {
	for _, v := range phraseVariations(term) {
		for i, c := range items {
			if c.lower == v {
				return i, true
			}
		}
	}
	return 0, false
}

func matchPrefix(term string, items []candidate) (int, bool) {
	for i, c := range items {
		if strings.HasPrefix(c.lower, term) || strings.HasPrefix(term, c.lower) {
			return i, true
		}
	}
	return 0, false
}

// matchContains scores term-in-name hits by len(term)/len(name); first best wins
func matchContains(term string, items []candidate) (int, bool) {
	best, bestScore := -1, 0.0
	for i, c := range items {
		if !strings.Contains(c.lower, term) {
			continue
		}
		score := float64(len(term)) / float64(len(c.lower))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func matchReverseContains(term string, items []candidate) (int, bool) {
	for i, c := range items {
		if strings.Contains(term, c.lower) {
			return i, true
		}
	}
	return 0, false
}

// matchWordOverlap credits each phrase word at most once when it is a
// substring of, or contains, some item word. Ranked by (matched, score).
func matchWordOverlap(term string, items []candidate) (int, bool) {
	termWords := strings.Fields(term)
	best, bestMatched, bestScore := -1, 0, 0.0

	for i, c := range items {
		itemWords := strings.Fields(c.lower)
		matched := 0
		for _, tw := range termWords {
			for _, iw := range itemWords {
				if strings.Contains(iw, tw) || strings.Contains(tw, iw) {
					matched++
					break
				}
			}
		}
		if matched == 0 {
			continue
		}
		score := float64(matched) / float64(len(termWords))
		if matched > bestMatched || (matched == bestMatched && score > bestScore) {
			best, bestMatched, bestScore = i, matched, score
		}
	}
	return best, best >= 0
}

// matchNormalized compares with spaces, hyphens and underscores removed; equality beats containment
func matchNormalized(term string, items []candidate) (int, bool) {
	squashed := squash(term)
	if squashed == "" {
		return 0, false
	}
	for i, c := range items {
		if squash(c.lower) == squashed {
			return i, true
		}
	}
	for i, c := range items {
		name := squash(c.lower)
		if strings.Contains(name, squashed) || strings.Contains(squashed, name) {
			return i, true
		}
	}
	return 0, false
}

func matchSynonym(term string, items []candidate) (int, bool) {
	lookup := func(names []string) (int, bool) {
		for _, name := range names {
			lower := strings.ToLower(name)
			for i, c := range items {
				if c.lower == lower {
					return i, true
				}
			}
		}
		return 0, false
	}

	for _, s := range synonyms {
		if s.key == term {
			if idx, ok := lookup(s.names); ok {
				return idx, true
			}
		}
	}
	for _, s := range synonyms {
		if strings.Contains(s.key, term) || strings.Contains(term, s.key) {
			if idx, ok := lookup(s.names); ok {
				return idx, true
			}
		}
	}
	return 0, false
}

func (r *Resolver) matchFuzzy(term string, items []candidate) (int, bool) {
	best, bestSim := -1, 0.0
	for i, c := range items {
		sim := Similarity(term, c.lower)
		if sim > r.fuzzyThreshold && sim > bestSim {
			best, bestSim = i, sim
		}
	}
	return best, best >= 0
}
