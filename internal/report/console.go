package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spacesedan/aspectflow/internal/models"
)

func title(a models.Aspect) string {
	return cases.Title(language.English).String(string(a))
}

// PrintSummary writes the operator summary for a run.
func PrintSummary(w io.Writer, res Result, paths []string) {
	fmt.Fprintf(w, "Top Keywords: %s\n", formatCounts(res.TopKeywords))

	fmt.Fprintln(w, "\nResults saved to:")
	for _, p := range paths {
		fmt.Fprintf(w, "- %s\n", p)
	}

	fmt.Fprintln(w, "\nAverage Ratings by Aspect:")
	for _, a := range models.Aspects {
		if avg, ok := res.Averages[a]; ok {
			fmt.Fprintf(w, "%s: %.2f\n", title(a), avg)
		}
	}

	fmt.Fprintln(w, "\nImprovement Suggestions:")
	if len(res.Suggestions) == 0 {
		fmt.Fprintln(w, "None, every aspect is at or above the threshold.")
	}
	for _, a := range models.Aspects {
		s, ok := res.Suggestions[a]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s (Average Rating: %.2f):\n", title(a), s.AverageRating)
		fmt.Fprintln(w, s.Text)
		fmt.Fprintf(w, "Keywords from Negative Reviews: %s\n", strings.Join(s.Keywords.Keywords(), ", "))
	}
}

func formatCounts(kc models.KeywordCounts) string {
	parts := make([]string, 0, len(kc))
	for _, k := range kc {
		parts = append(parts, fmt.Sprintf("%s=%d", k.Keyword, k.Count))
	}
	return strings.Join(parts, ", ")
}
