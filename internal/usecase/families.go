package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bellavista/orderbot/internal/domain"
)

const maxGreetingNameLength = 31

// Compiled regex patterns for the intent families
var (
	greetingPattern = regexp.MustCompile(`\b(hi|hello|hey|hiya|howdy|greetings|good\s+(?:morning|afternoon|evening))\b`)

	// Applied to the original text so the name keeps its casing
	greetingNamePattern = regexp.MustCompile(`(?i)\b(?:hi|hello|hey|hiya|howdy|greetings|good\s+(?:morning|afternoon|evening))\b[\s,!.\-]*(?:(i'm|i\s+am|im|this\s+is|my\s+name\s+is)\s+)?([a-z][a-z'\-]*)`)

	clearChatPattern = regexp.MustCompile(`\b(clear\s+(?:the\s+|my\s+)?(?:chat|conversation|history)|reset\s+(?:the\s+|my\s+)?(?:chat|conversation)|start\s+over|new\s+conversation)\b`)

	showCartPattern = regexp.MustCompile(`\b(show\s+(?:me\s+)?(?:my\s+|the\s+)?cart|view\s+(?:my\s+|the\s+)?cart|see\s+(?:my\s+|the\s+)?cart|cart\s+contents|what'?s\s+in\s+(?:my|the)\s+cart|what\s+is\s+in\s+(?:my|the)\s+cart|check\s+(?:my\s+|the\s+)?cart)\b`)

	removeAllPattern = regexp.MustCompile(`\b(?:remove|delete|cancel|take\s+out)\s+all\s+(?:of\s+)?(?:the\s+)?(.+)$`)

	placeOrderPattern = regexp.MustCompile(`\b(?:place\s+(?:my\s+|the\s+|1\s+)?order|check\s*out|order\s+now|confirm\s+(?:my\s+|the\s+)?order|complete\s+(?:my\s+|the\s+)?order|submit\s+(?:my\s+|the\s+)?order)\b(.*)$`)

	// Remove/decrease intent always outranks add intent
	removeGuardPattern = regexp.MustCompile(`\b(remove|delete|cancel|decrease|reduce)\b|\btake\s+out\b`)

	multiItemPattern = regexp.MustCompile(`\b(?:add|i\s+want|i'd\s+like|i\s+would\s+like|get\s+me|order|can\s+i\s+(?:have|get))\s+(.+)$`)

	itemSeparatorPattern = regexp.MustCompile(`\s*,\s*(?:and\s+)?|\s*&\s*|\s+and\s+|\s+plus\s+`)

	leadingConjunctionPattern = regexp.MustCompile(`^(and|also|plus|the)\s+`)

	// "i want to order 2 x and 1 y" carries its list after the second verb
	nestedVerbPattern = regexp.MustCompile(`^to\s+(?:order|get|have|add)\s+`)

	leadingQuantityPattern = regexp.MustCompile(`^(\d+)\s+(.+)$`)

	digitPattern = regexp.MustCompile(`\d`)

	// Words that may trail a checkout phrase without naming anything
	orderFillerPattern = regexp.MustCompile(`\b(?:please|pls|now|my|the|for\s+me|thanks|thank\s+you)\b|[.!?,;:]`)

	leadingForOfPattern = regexp.MustCompile(`^(?:for|of)\s+`)
)

// itemShape is one regex form of an item-bearing command. qty and item are
// submatch indexes; a qty of 0 means the shape implies a quantity of 1.
type itemShape struct {
	pattern *regexp.Regexp
	qty     int
	item    int
}

var decreaseShapes = []itemShape{
	{regexp.MustCompile(`\b(?:remove|delete)\s+(?:the\s+)?(\d+)\s+(?:quantity|quantities|qty)\s+of\s+(.+)$`), 1, 2},
	{regexp.MustCompile(`\b(?:remove|delete|reduce|decrease)\s+(?:the\s+)?(.+?)\s+(?:quantity\s+)?by\s+(\d+)\b`), 2, 1},
	{regexp.MustCompile(`\b(?:remove|delete|cancel|take\s+out)\s+(\d+)\s+(.+)$`), 1, 2},
	{regexp.MustCompile(`\b(?:decrease|reduce)\s+(?:the\s+)?(.+)$`), 0, 1},
	{regexp.MustCompile(`\b(?:remove|delete|cancel|take\s+out)\s+(?:all\s+(?:of\s+)?)?(?:the\s+)?(.+)$`), 0, 1},
}

var increaseShapes = []itemShape{
	{regexp.MustCompile(`\badd\s+(\d+)\s+more\s+(.+)$`), 1, 2},
	{regexp.MustCompile(`\badd\s+more\s+(.+)$`), 0, 1},
	{regexp.MustCompile(`\bincrease\s+(?:the\s+)?(.+?)\s+(?:quantity\s+)?by\s+(\d+)\b`), 2, 1},
	{regexp.MustCompile(`\bincrease\s+(?:the\s+)?(.+)$`), 0, 1},
}

// addShapes may carry an optional quantity; an empty qty group means 1
var addShapes = []itemShape{
	{regexp.MustCompile(`\badd\s+(?:(\d+)\s+)?(.+)$`), 1, 2},
	{regexp.MustCompile(`\bi(?:\s+want|\s+would\s+like|'d\s+like)\s+(?:(\d+)\s+)?(?:of\s+)?(.+)$`), 1, 2},
	{regexp.MustCompile(`\bget\s+me\s+(?:(\d+)\s+)?(.+)$`), 1, 2},
	{regexp.MustCompile(`\border\s+(?:(\d+)\s+)?(.+)$`), 1, 2},
	{regexp.MustCompile(`\bcan\s+i\s+(?:have|get)\s+(?:(\d+)\s+)?(.+)$`), 1, 2},
	{regexp.MustCompile(`^(\d+)\s+(.+)$`), 1, 2},
}

// nameStopWords are tokens after a greeting that are not a name
var nameStopWords = map[string]bool{
	"i": true, "im": true, "there": true, "everyone": true, "all": true, "guys": true,
	"team": true, "again": true, "friend": true, "buddy": true, "can": true, "could": true,
	"what": true, "how": true, "is": true, "please": true, "want": true, "need": true,
	"would": true, "the": true, "my": true, "to": true, "and": true, "add": true,
	"having": true, "feeling": true, "so": true, "very": true, "not": true, "just": true,
	"good": true, "fine": true, "here": true, "hungry": true, "looking": true, "doing": true,
	"great": true, "okay": true, "ok": true, "tired": true, "sad": true, "back": true,
	"new": true, "starving": true, "a": true, "an": true, "really": true, "trying": true,
	"wondering": true, "in": true, "at": true, "on": true, "going": true, "getting": true,
	"show": true, "do": true, "does": true, "are": true, "you": true, "thanks": true,
}

// bareLeadWords disqualify a bare item line; they open questions or commands
var bareLeadWords = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true, "who": true,
	"which": true, "show": true, "display": true, "see": true, "view": true, "list": true,
	"can": true, "could": true, "do": true, "does": true, "is": true, "are": true,
	"tell": true, "help": true, "thanks": true, "thank": true, "ok": true, "okay": true,
	"yes": true, "no": true, "what's": true, "i": true, "i'm": true, "im": true, "my": true, "we": true,
	"you": true, "it": true, "this": true, "that": true, "just": true, "not": true,
	"so": true, "please": true, "hmm": true, "sure": true,
}

// preciseTiers are the only tiers trusted for a bare item line
var preciseTiers = map[MatchTier]bool{
	TierExact: true, TierVariation: true, TierPrefix: true, TierSynonym: true, TierFuzzy: true, TierFallback: true,
}

// parseQuantity reads a captured quantity; empty means 1
func parseQuantity(s string) (int, bool) {
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// capture applies shape to text and returns the quantity and cleaned item phrase
func (s itemShape) capture(text string) (int, string, bool) {
	m := s.pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	qty := 1
	if s.qty > 0 {
		n, ok := parseQuantity(m[s.qty])
		if !ok {
			return 0, "", false
		}
		qty = n
	}
	phrase := cleanItemPhrase(m[s.item])
	if !validItemPhrase(phrase) {
		return 0, "", false
	}
	return qty, phrase, true
}

func notFoundLabel(qty int, phrase string) string {
	return fmt.Sprintf("%d %s", qty, phrase)
}

// 1. Greeting
func (e *Extractor) matchGreeting(m *message) (domain.ActionRecord, bool) {
	if !greetingPattern.MatchString(m.text) {
		return nil, false
	}
	name := greetingName(m.raw)
	state := DetectEmotion(m.raw)
	return domain.NewGreeting(name, state, greetingText(e.picker, name, state)), true
}

// greetingName pulls an optional name from right after the greeting word.
// Without an "I'm" style introduction the token must be capitalized.
func greetingName(raw string) string {
	match := greetingNamePattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	introduced := match[1] != ""
	token := strings.Trim(match[2], "'-")
	if token == "" || utf8.RuneCountInString(token) > maxGreetingNameLength {
		return ""
	}
	if nameStopWords[strings.ToLower(token)] {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(token)
	if !introduced && !unicode.IsUpper(first) {
		return ""
	}
	return titleCase(token)
}

// 2. Session reset
func (e *Extractor) matchClearChat(m *message) (domain.ActionRecord, bool) {
	if !clearChatPattern.MatchString(m.text) {
		return nil, false
	}
	return domain.NewClearChat(), true
}

// 3. Cart query
func (e *Extractor) matchShowCart(m *message) (domain.ActionRecord, bool) {
	if !showCartPattern.MatchString(m.text) {
		return nil, false
	}
	return domain.NewShowCart(), true
}

// 4. Bulk remove. The only family that falls through when the item does not resolve.
func (e *Extractor) matchRemoveAll(m *message) (domain.ActionRecord, bool) {
	match := removeAllPattern.FindStringSubmatch(m.text)
	if match == nil {
		return nil, false
	}
	phrase := cleanItemPhrase(match[1])
	if !validItemPhrase(phrase) {
		return nil, false
	}
	entry, ok := e.resolve(m, phrase)
	if !ok {
		return nil, false
	}
	return domain.NewRemoveAll(entry.Name), true
}

// 5. Quantified remove/decrease. Quantity 1 is still an explicit decrease.
func (e *Extractor) matchDecrease(m *message) (domain.ActionRecord, bool) {
	for _, shape := range decreaseShapes {
		qty, phrase, ok := shape.capture(m.text)
		if !ok {
			continue
		}
		entry, found := e.resolve(m, phrase)
		if !found {
			// "cancel my order" names no item; only an explicit count reports it missing
			if shape.qty == 0 {
				return nil, false
			}
			return domain.NewItemNotFound([]string{notFoundLabel(qty, phrase)}), true
		}
		return domain.NewUpdate(domain.OperationDecrease, entry.Name, qty), true
	}
	return nil, false
}

// 6. Increase. Unresolved items keep the raw phrase as the target.
func (e *Extractor) matchIncrease(m *message) (domain.ActionRecord, bool) {
	for _, shape := range increaseShapes {
		qty, phrase, ok := shape.capture(m.text)
		if !ok {
			continue
		}
		target := phrase
		if entry, found := e.resolve(m, phrase); found {
			target = entry.Name
		}
		return domain.NewUpdate(domain.OperationIncrease, target, qty), true
	}
	return nil, false
}

// 7. Order placement. Messages that also specify contents fall through to later families.
func (e *Extractor) matchPlaceOrder(m *message) (domain.ActionRecord, bool) {
	match := placeOrderPattern.FindStringSubmatch(m.text)
	if match == nil {
		return nil, false
	}
	rest := match[1]
	if digitPattern.MatchString(rest) || mentionsCategory(rest) || strings.Contains(rest, "menu") {
		return nil, false
	}
	if namesItem(rest) {
		return nil, false
	}
	if len(findCategoryQuantities(m.text, nil)) > 0 {
		return nil, false
	}
	orderID := fmt.Sprintf("ORD-%d", e.now().Unix())
	return domain.NewPlaceOrder(orderID, cartTotal(m.cart)), true
}

// namesItem reports whether the text after a checkout phrase carries more than filler
func namesItem(rest string) bool {
	if strings.TrimSpace(orderFillerPattern.ReplaceAllString(rest, " ")) == "" {
		return false
	}
	phrase := cleanItemPhrase(leadingForOfPattern.ReplaceAllString(cleanItemPhrase(rest), ""))
	return validItemPhrase(phrase)
}

// 8. Multi-category bulk order
func (e *Extractor) matchCategoryBulk(m *message) (domain.ActionRecord, bool) {
	pairs := findCategoryQuantities(m.text, m.snap.AvailableNames())
	switch {
	case len(pairs) >= 2:
		return domain.NewMultiCategoryBulk(pairs), true
	case len(pairs) == 1:
		return domain.NewBulkMenu(pairs[0].Category, pairs[0].Quantity), true
	default:
		return nil, false
	}
}

// 9. Multi-item conjunction: "add 2 X and 1 Y, Z"
func (e *Extractor) matchMultiItem(m *message) (domain.ActionRecord, bool) {
	if removeGuardPattern.MatchString(m.text) {
		return nil, false
	}
	match := multiItemPattern.FindStringSubmatch(m.text)
	if match == nil {
		return nil, false
	}

	body := nestedVerbPattern.ReplaceAllString(match[1], "")
	segments := splitItems(body, e.protectedNames(m))
	if len(segments) < 2 {
		return nil, false
	}

	var found []domain.ResolvedItem
	var missing []string
	for _, seg := range segments {
		qty, phrase := 1, seg
		if q := leadingQuantityPattern.FindStringSubmatch(seg); q != nil {
			n, ok := parseQuantity(q[1])
			if !ok {
				return nil, false
			}
			qty, phrase = n, q[2]
		}
		phrase = cleanItemPhrase(phrase)
		if !validItemPhrase(phrase) {
			missing = append(missing, notFoundLabel(qty, phrase))
			continue
		}
		entry, ok := e.resolve(m, phrase)
		if !ok {
			missing = append(missing, notFoundLabel(qty, phrase))
			continue
		}
		found = append(found, resolvedItem(entry, qty))
	}

	switch {
	case len(found) == 0:
		return domain.NewItemNotFound(missing), true
	case len(missing) == 0:
		return domain.NewAddMultiple(found), true
	default:
		return domain.NewAddMultiplePartial(found, missing), true
	}
}

// protectedNames lists names that contain a separator and must not be split
func (e *Extractor) protectedNames(m *message) []string {
	var names []string
	for _, name := range m.snap.AvailableNames() {
		lower := strings.ToLower(name)
		if itemSeparatorPattern.MatchString(lower) {
			names = append(names, lower)
		}
	}
	for _, s := range synonyms {
		if itemSeparatorPattern.MatchString(s.key) {
			names = append(names, s.key)
		}
	}
	return names
}

// splitItems splits body on commas, "&", "and" and "plus", keeping protected names whole
func splitItems(body string, protected []string) []string {
	placeholders := make(map[string]string)
	for i, name := range protected {
		if !strings.Contains(body, name) {
			continue
		}
		ph := fmt.Sprintf("\x00%d\x00", i)
		placeholders[ph] = name
		body = strings.ReplaceAll(body, name, ph)
	}

	var segments []string
	for _, seg := range itemSeparatorPattern.Split(body, -1) {
		for ph, name := range placeholders {
			seg = strings.ReplaceAll(seg, ph, name)
		}
		seg = strings.TrimSpace(seg)
		for {
			stripped := leadingConjunctionPattern.ReplaceAllString(seg, "")
			if stripped == seg {
				break
			}
			seg = stripped
		}
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// 10. Single-item add
func (e *Extractor) matchSingleItem(m *message) (domain.ActionRecord, bool) {
	if removeGuardPattern.MatchString(m.text) {
		return nil, false
	}

	for _, shape := range addShapes {
		qty, phrase, ok := shape.capture(m.text)
		if !ok || strings.HasPrefix(phrase, "to ") {
			continue
		}
		entry, found := e.resolve(m, phrase)
		if !found {
			return domain.NewItemNotFound([]string{notFoundLabel(qty, phrase)}), true
		}
		return domain.NewAdd([]domain.ResolvedItem{resolvedItem(entry, qty)}, DetectEmotion(m.raw)), true
	}

	return e.matchBareItem(m)
}

// matchBareItem accepts a short line that is nothing but an item name.
// Unlike the other shapes it never reports item_not_found.
func (e *Extractor) matchBareItem(m *message) (domain.ActionRecord, bool) {
	words := strings.Fields(m.text)
	if len(words) == 0 || len(words) > 4 || bareLeadWords[words[0]] {
		return nil, false
	}
	if strings.Contains(m.text, "menu") || strings.Contains(m.text, "cart") {
		return nil, false
	}
	phrase := cleanItemPhrase(m.text)
	if len(phrase) < 3 || !validItemPhrase(phrase) {
		return nil, false
	}
	match, ok := e.resolver.ResolveSnapshot(phrase, m.snap)
	if !ok || !preciseTiers[match.Tier] {
		return nil, false
	}
	return domain.NewAdd([]domain.ResolvedItem{resolvedItem(match.Entry, 1)}, DetectEmotion(m.raw)), true
}
