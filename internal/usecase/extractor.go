package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/bellavista/orderbot/internal/domain"
)

// ExtractorConfig holds configuration for the intent extractor
type ExtractorConfig struct {
	Resolver *Resolver
	// Picker selects greeting template variants; nil picks the first
	Picker Picker
	// Now stamps order ids; nil uses time.Now
	Now      func() time.Time
	Logger   *zap.Logger
	Recorder Recorder
}

// Extractor turns one user message into one ActionRecord by testing pattern
// families in strict priority order. It holds no per-call state.
type Extractor struct {
	resolver *Resolver
	picker   Picker
	now      func() time.Time
	logger   *zap.Logger
	recorder Recorder
	families []family
}

// message is the per-call input shared by every family
type message struct {
	raw  string // original text, used for names and emotion
	text string // normalized text, used for pattern matching
	snap domain.Snapshot
	cart []domain.CartLine
}

type family struct {
	name  string
	match func(m *message) (domain.ActionRecord, bool)
}

// NewExtractor creates an extractor with the given configuration
func NewExtractor(config ExtractorConfig) *Extractor {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver := config.Resolver
	if resolver == nil {
		resolver = NewResolver(ResolverConfig{Logger: logger, Recorder: config.Recorder})
	}

	picker := config.Picker
	if picker == nil {
		picker = FirstPicker
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	e := &Extractor{
		resolver: resolver,
		picker:   picker,
		now:      now,
		logger:   logger,
		recorder: recorderOrNop(config.Recorder),
	}

	e.families = []family{
		{"greeting", e.matchGreeting},
		{"clear_chat", e.matchClearChat},
		{"show_cart", e.matchShowCart},
		{"remove_all", e.matchRemoveAll},
		{"decrease", e.matchDecrease},
		{"increase", e.matchIncrease},
		{"place_order", e.matchPlaceOrder},
		{"category_bulk", e.matchCategoryBulk},
		{"multi_item", e.matchMultiItem},
		{"single_item", e.matchSingleItem},
	}
	return e
}

// Extract classifies message against the catalog snapshot. The cart is only
// used to total a placed order. Extract never fails: unmatched input yields
// the "none" record.
func (e *Extractor) Extract(raw string, snap domain.Snapshot, cart []domain.CartLine) domain.ActionRecord {
	m := &message{
		raw:  normalizeApostrophes(raw),
		text: NormalizeMessage(raw),
		snap: snap,
		cart: cart,
	}

	if m.text == "" {
		return e.emit("empty", domain.NewNone())
	}

	for _, f := range e.families {
		if record, ok := f.match(m); ok {
			return e.emit(f.name, record)
		}
	}
	return e.emit("default", domain.NewNone())
}

func (e *Extractor) emit(familyName string, record domain.ActionRecord) domain.ActionRecord {
	e.logger.Debug("intent extracted",
		zap.String("family", familyName),
		zap.String("action", string(record.Kind())),
	)
	e.recorder.Extraction(string(record.Kind()))
	return record
}

// resolve maps an item phrase against the message's snapshot
func (e *Extractor) resolve(m *message, phrase string) (domain.CatalogEntry, bool) {
	match, ok := e.resolver.ResolveSnapshot(phrase, m.snap)
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return match.Entry, true
}

func resolvedItem(entry domain.CatalogEntry, quantity int) domain.ResolvedItem {
	return domain.ResolvedItem{
		Name:       entry.Name,
		Quantity:   quantity,
		Price:      entry.Price,
		ID:         entry.ID,
		Commentary: entry.Commentary(),
	}
}

func cartTotal(cart []domain.CartLine) float64 {
	total := 0.0
	for _, line := range cart {
		total += line.LineTotal()
	}
	return total
}
