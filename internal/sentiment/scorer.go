// Package sentiment holds the models that rate a piece of review text on a
// five-class scale, 0 (very negative) to 4 (very positive).
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	NumClasses       = 5
	DefaultMaxTokens = 512
)

var (
	ErrUnknownScorer = errors.New("unknown scorer")
	ErrBadLabel      = errors.New("unrecognized sentiment label")
	ErrEmptyOutput   = errors.New("model returned no classification")
)

// Scorer rates text. Implementations return a class index in [0, NumClasses).
type Scorer interface {
	Score(ctx context.Context, text string) (int, error)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(ctx context.Context, text string) (int, error)

func (f ScorerFunc) Score(ctx context.Context, text string) (int, error) {
	return f(ctx, text)
}

// Truncate keeps at most maxTokens whitespace separated words of text. It is
// used by backends without a local subword tokenizer; HugotScorer cuts on
// model tokens with TruncateTokens instead.
func Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= maxTokens {
		return text
	}
	return strings.Join(words[:maxTokens], " ")
}

// ClassFromLabel maps a classifier label to a class index. Star labels such
// as "1 star" or "4 stars" map to stars-1; generic "LABEL_n" labels map to n.
func ClassFromLabel(label string) (int, error) {
	l := strings.TrimSpace(strings.ToLower(label))

	if rest, ok := strings.CutPrefix(l, "label_"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n >= NumClasses {
			return 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
		}
		return n, nil
	}

	end := strings.IndexFunc(l, func(r rune) bool { return !unicode.IsDigit(r) })
	if end <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	stars, err := strconv.Atoi(l[:end])
	if err != nil || stars < 1 || stars > NumClasses {
		return 0, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	return stars - 1, nil
}
