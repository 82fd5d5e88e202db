package usecase

import (
	"math/rand/v2"
	"strings"

	"github.com/bellavista/orderbot/internal/domain"
)

// Picker chooses one of n template variants. It must return a value in [0, n).
type Picker func(n int) int

// FirstPicker always picks the first variant
func FirstPicker(int) int { return 0 }

// RandomPicker picks a variant uniformly at random
func RandomPicker(n int) int { return rand.IntN(n) }

func pick(p Picker, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	if p == nil {
		p = FirstPicker
	}
	i := p(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return variants[i]
}

// greetingTemplates holds the greeting lines per detected emotion; {name} is substituted
var greetingTemplates = map[domain.Emotion][]string{
	domain.EmotionCrisis: {
		"{name}, I'm really sorry you're feeling this way. You don't have to face it alone. Please reach out to someone you trust or a local crisis line right now. I'm here to listen as well.",
	},
	domain.EmotionVeryNegative: {
		"Oh {name}, I'm so sorry you're having such a rough day. Let me help make it a little better with some comfort food. What sounds good?",
		"That sounds really hard, {name}. How about something warm and comforting from our kitchen?",
	},
	domain.EmotionCelebratory: {
		"Congratulations, {name}! That calls for a celebration. Want me to suggest something special?",
		"How exciting, {name}! Let's make it delicious. Shall I show you our desserts?",
	},
	domain.EmotionLonely: {
		"Hi {name}, I'm really glad you stopped by. I'm happy to keep you company while you pick something tasty.",
	},
	domain.EmotionUnwell: {
		"Sorry to hear you're not feeling well, {name}. Something light or a warm tea might help. Want me to show a few gentle options?",
	},
	domain.EmotionNegative: {
		"Hi {name}, sorry things are tough right now. Good food can help a little. What can I get you?",
		"I hear you, {name}. Let's find something that lifts your mood.",
	},
	domain.EmotionPositive: {
		"Hi {name}! Love the good vibes. What can I get you today?",
		"Great to hear, {name}! Ready to order something delicious?",
	},
	domain.EmotionSlightlyNegative: {
		"Hey {name}, let's see if we can turn that around with something delicious.",
	},
	domain.EmotionNeutral: {
		"Hello {name}! Welcome to Bella Vista. What can I get for you today?",
		"Hi {name}! Take a look at the menu or just tell me what you're craving.",
	},
}

// greetingText renders the greeting line for state, addressing name or "there"
func greetingText(p Picker, name string, state domain.EmotionalState) string {
	variants, ok := greetingTemplates[state.Emotion]
	if !ok {
		variants = greetingTemplates[domain.EmotionNeutral]
	}
	if name == "" {
		name = "there"
	}
	return strings.ReplaceAll(pick(p, variants), "{name}", name)
}
