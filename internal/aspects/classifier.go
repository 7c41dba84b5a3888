// Package aspects rates reviews along the fixed food/service/atmosphere/pricing
// aspects.
package aspects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/aspectflow/internal/models"
	"github.com/spacesedan/aspectflow/internal/sentiment"
	"github.com/spacesedan/aspectflow/internal/textclean"
)

var (
	ErrUnknownAspect = errors.New("unknown aspect")
	ErrBadClass      = errors.New("scorer returned class out of range")
)

// FailurePolicy decides what a scorer error does to a review.
type FailurePolicy string

const (
	// FailAbort returns the error and stops the run.
	FailAbort FailurePolicy = "abort"
	// FailNeutral keeps the neutral rating for that aspect.
	FailNeutral FailurePolicy = "neutral"
)

// WholeReviewPerAspect is the scoring policy in use: every matched aspect
// scores the whole review text with its own model call, so all matched
// aspects of one review carry the review's overall sentiment.
const WholeReviewPerAspect = "whole-review-per-aspect"

type Classifier struct {
	triggers Triggers
	scorer   sentiment.Scorer
	onError  FailurePolicy
}

func NewClassifier(triggers Triggers, scorer sentiment.Scorer, onError FailurePolicy) *Classifier {
	if onError == "" {
		onError = FailAbort
	}
	return &Classifier{triggers: triggers, scorer: scorer, onError: onError}
}

// Matches returns the aspects whose trigger list hits text, in aspect order.
func (c *Classifier) Matches(text string) []models.Aspect {
	lower := textclean.Lower(text)
	var hit []models.Aspect
	for _, aspect := range models.Aspects {
		for _, kw := range c.triggers[aspect] {
			if kw != "" && strings.Contains(lower, textclean.Lower(kw)) {
				hit = append(hit, aspect)
				break
			}
		}
	}
	return hit
}

// Classify rates one review. Reviews without text get neutral scores.
func (c *Classifier) Classify(ctx context.Context, review string) (models.AspectScores, error) {
	scores := models.NeutralScores()
	if review == "" {
		return scores, nil
	}

	for _, aspect := range c.Matches(review) {
		class, err := c.scorer.Score(ctx, review)
		if err == nil && (class < 0 || class >= sentiment.NumClasses) {
			err = fmt.Errorf("%w: %d", ErrBadClass, class)
		}
		if err != nil {
			if c.onError == FailNeutral {
				slog.Warn("[Classifier] Scoring failed, keeping neutral rating",
					slog.String("aspect", string(aspect)),
					slog.String("error", err.Error()))
				continue
			}
			return nil, fmt.Errorf("scoring aspect %s: %w", aspect, err)
		}
		scores[aspect] = class + 1
	}
	return scores, nil
}

// Annotate classifies every review in input order.
func (c *Classifier) Annotate(ctx context.Context, reviews []models.Review) ([]models.AnnotatedReview, error) {
	table := make([]models.AnnotatedReview, 0, len(reviews))
	for i, r := range reviews {
		text := ""
		if r.HasText {
			text = r.Text
		}
		scores, err := c.Classify(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("review %d: %w", i, err)
		}
		table = append(table, models.AnnotatedReview{Review: r, Aspects: scores})
	}
	return table, nil
}
