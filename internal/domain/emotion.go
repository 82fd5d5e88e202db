package domain

// Emotion is the coarse feeling detected in a message
type Emotion string

const (
	EmotionNeutral          Emotion = "neutral"
	EmotionPositive         Emotion = "positive"
	EmotionCelebratory      Emotion = "celebratory"
	EmotionNegative         Emotion = "negative"
	EmotionVeryNegative     Emotion = "very_negative"
	EmotionCrisis           Emotion = "crisis"
	EmotionLonely           Emotion = "lonely"
	EmotionUnwell           Emotion = "unwell"
	EmotionSlightlyNegative Emotion = "slightly_negative"
)

// Intensity ranks how strongly an emotion was expressed
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

// Rank orders intensities: very_high > high > medium > low > none
func (i Intensity) Rank() int {
	switch i {
	case IntensityVeryHigh:
		return 4
	case IntensityHigh:
		return 3
	case IntensityMedium:
		return 2
	case IntensityLow:
		return 1
	default:
		return 0
	}
}

// EmotionalState is derived from keyword membership in a single message
type EmotionalState struct {
	Emotion         Emotion   `json:"emotion"`
	Intensity       Intensity `json:"intensity"`
	MatchedCategory string    `json:"matched_category,omitempty"`
	MatchedKeyword  string    `json:"matched_keyword,omitempty"`
}

// NeutralState is returned when no keyword matched
func NeutralState() EmotionalState {
	return EmotionalState{Emotion: EmotionNeutral, Intensity: IntensityNone}
}

// IsNeutral reports whether nothing emotional was detected
func (s EmotionalState) IsNeutral() bool {
	return s.Emotion == EmotionNeutral || s.Emotion == ""
}
