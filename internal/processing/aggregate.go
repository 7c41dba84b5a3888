// Package processing turns an annotated review table into per-aspect averages
// and improvement suggestions.
package processing

import (
	"errors"
	"fmt"

	"github.com/spacesedan/aspectflow/internal/models"
)

var (
	ErrData       = errors.New("data error")
	ErrEmptyTable = fmt.Errorf("%w: no reviews to aggregate", ErrData)
	ErrNoRatings  = fmt.Errorf("%w: aspect has no ratings", ErrData)
)

// Aggregate returns the mean rating of every aspect. Rows without a value for
// an aspect are left out of that aspect's mean.
func Aggregate(table []models.AnnotatedReview) (models.AspectAverages, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}

	averages := make(models.AspectAverages, len(models.Aspects))
	for _, aspect := range models.Aspects {
		sum, n := 0, 0
		for _, row := range table {
			v, ok := row.Aspects[aspect]
			if !ok {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoRatings, aspect)
		}
		averages[aspect] = float64(sum) / float64(n)
	}
	return averages, nil
}
