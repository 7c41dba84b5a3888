package processing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/aspectflow/internal/keywords"
	"github.com/spacesedan/aspectflow/internal/models"
)

const (
	DefaultThreshold          = 3.5
	DefaultSuggestionKeywords = 5
)

// Suggest builds a suggestion for every aspect averaging strictly below
// threshold. Keywords come from the reviews rating that aspect at or below
// threshold.
func Suggest(averages models.AspectAverages, table []models.AnnotatedReview, threshold float64, topN int) models.Suggestions {
	suggestions := models.Suggestions{}
	for _, aspect := range models.Aspects {
		avg, ok := averages[aspect]
		if !ok || avg >= threshold {
			continue
		}

		docs := belowPar(table, aspect, threshold)
		kws := keywords.Extract(docs, topN)
		suggestions[aspect] = models.Suggestion{
			AverageRating: avg,
			Keywords:      kws,
			Text:          SuggestionText(aspect, kws.Keywords()),
		}

		slog.Info("[Suggestions] Aspect below threshold",
			slog.String("aspect", string(aspect)),
			slog.Float64("average", avg),
			slog.Int("negative_reviews", len(docs)))
	}
	return suggestions
}

func belowPar(table []models.AnnotatedReview, aspect models.Aspect, threshold float64) []string {
	var docs []string
	for _, row := range table {
		v, ok := row.Aspects[aspect]
		if !ok || float64(v) > threshold || !row.HasText {
			continue
		}
		docs = append(docs, row.Text)
	}
	return docs
}

func SuggestionText(aspect models.Aspect, kws []string) string {
	return fmt.Sprintf("Focus on improving %s. Consider addressing concerns around: %s.", aspect, strings.Join(kws, ", "))
}
