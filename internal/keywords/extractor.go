// Package keywords counts the most frequent non-stopword terms of a document set.
package keywords

import (
	"regexp"
	"sort"

	"github.com/spacesedan/aspectflow/internal/models"
	"github.com/spacesedan/aspectflow/internal/textclean"
)

// tokens are runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize drops links from doc, lower-cases it and returns its non-stopword
// tokens in order. Other markup is left alone so every word run is counted.
func Tokenize(doc string) []string {
	var out []string
	for _, tok := range tokenPattern.FindAllString(textclean.Lower(textclean.RemoveLinks(doc)), -1) {
		if IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Extract returns the topN most frequent terms across documents, by descending
// count with ties in alphabetical order. topN <= 0 returns every term. An empty
// document set or vocabulary yields an empty result.
func Extract(documents []string, topN int) models.KeywordCounts {
	counts := make(map[string]int)
	for _, doc := range documents {
		for _, tok := range Tokenize(doc) {
			counts[tok]++
		}
	}

	out := make(models.KeywordCounts, 0, len(counts))
	for k, c := range counts {
		out = append(out, models.KeywordCount{Keyword: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
