package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
	"github.com/spacesedan/aspectflow/internal/textclean"
)

// VaderScorer buckets the VADER compound score into five classes. It needs
// no model files and works offline.
type VaderScorer struct {
	analyzer  *govader.SentimentIntensityAnalyzer
	maxTokens int
}

func NewVaderScorer(maxTokens int) *VaderScorer {
	return &VaderScorer{
		analyzer:  govader.NewSentimentIntensityAnalyzer(),
		maxTokens: maxTokens,
	}
}

func (v *VaderScorer) Score(_ context.Context, text string) (int, error) {
	plainText := textclean.PlainText(Truncate(text, v.maxTokens))
	sentiment := v.analyzer.PolarityScores(plainText)
	return ClassFromCompound(sentiment.Compound), nil
}

// ClassFromCompound maps a compound score in [-1, 1] to a class index. The
// middle band matches the +-0.20 neutral window.
func ClassFromCompound(score float64) int {
	switch {
	case score <= -0.60:
		return 0
	case score <= -0.20:
		return 1
	case score < 0.20:
		return 2
	case score < 0.60:
		return 3
	default:
		return 4
	}
}
