package usecase

import (
	"regexp"
	"strings"

	"github.com/bellavista/orderbot/internal/domain"
)

type emotionCategory struct {
	name      string
	emotion   domain.Emotion
	intensity domain.Intensity
	keywords  []string
	patterns  []*regexp.Regexp
}

// emotionTable is scanned in order; the first category wins an intensity tie
var emotionTable = []*emotionCategory{
	{
		name: "crisis", emotion: domain.EmotionCrisis, intensity: domain.IntensityVeryHigh,
		keywords: []string{"suicidal", "kill myself", "want to die", "end it all", "self harm", "hopeless"},
	},
	{
		name: "very_negative", emotion: domain.EmotionVeryNegative, intensity: domain.IntensityHigh,
		keywords: []string{"worst day", "terrible day", "awful", "horrible", "devastated", "miserable", "hate my life", "worst"},
	},
	{
		name: "celebratory", emotion: domain.EmotionCelebratory, intensity: domain.IntensityHigh,
		keywords: []string{"birthday", "anniversary", "celebrate", "celebrating", "promotion", "promoted", "graduated", "congrats", "congratulations"},
	},
	{
		name: "lonely", emotion: domain.EmotionLonely, intensity: domain.IntensityMedium,
		keywords: []string{"lonely", "alone", "no friends", "isolated"},
	},
	{
		name: "unwell", emotion: domain.EmotionUnwell, intensity: domain.IntensityMedium,
		keywords: []string{"not feeling well", "sick", "ill", "unwell", "headache", "fever"},
	},
	{
		name: "negative", emotion: domain.EmotionNegative, intensity: domain.IntensityMedium,
		keywords: []string{"bad day", "sad", "upset", "stressed", "tired", "frustrated", "angry"},
	},
	{
		name: "positive", emotion: domain.EmotionPositive, intensity: domain.IntensityMedium,
		keywords: []string{"good day", "happy", "great", "excited", "awesome", "wonderful", "amazing", "fantastic"},
	},
	{
		name: "slightly_negative", emotion: domain.EmotionSlightlyNegative, intensity: domain.IntensityLow,
		keywords: []string{"meh", "not great", "so-so", "so so", "bored", "okay i guess"},
	},
}

// negators cancel a positive keyword directly after them ("not great")
var negatorPattern = regexp.MustCompile(`\b(not|never|isn't|wasn't|n't)\s+$`)

func init() {
	for _, c := range emotionTable {
		for _, kw := range c.keywords {
			c.patterns = append(c.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
	}
}

// DetectEmotion scans message for emotional keywords. When several categories
// match, the highest intensity wins and ties go to the earlier category.
func DetectEmotion(message string) domain.EmotionalState {
	text := strings.ToLower(normalizeApostrophes(message))

	state := domain.NeutralState()
	bestRank := 0
	for _, c := range emotionTable {
		rank := c.intensity.Rank()
		if rank <= bestRank {
			continue
		}
		if kw, ok := c.match(text); ok {
			state = domain.EmotionalState{
				Emotion:         c.emotion,
				Intensity:       c.intensity,
				MatchedCategory: c.name,
				MatchedKeyword:  kw,
			}
			bestRank = rank
		}
	}
	return state
}

func (c *emotionCategory) match(text string) (string, bool) {
	for i, p := range c.patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			if c.emotion == domain.EmotionPositive && negatorPattern.MatchString(text[:loc[0]]) {
				continue
			}
			return c.keywords[i], true
		}
	}
	return "", false
}
