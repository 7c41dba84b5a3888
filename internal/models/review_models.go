package models

import "encoding/json"

// ReviewField is one raw key/value pair of an input record, kept in source order.
type ReviewField struct {
	Key   string
	Value json.RawMessage
}

// Review is one input row. Fields holds every source field untouched so the
// writers can pass them through; Text is the `review` column.
type Review struct {
	Fields  []ReviewField
	Text    string
	HasText bool
}

// Field returns the raw value for key, if the record carries it.
func (r Review) Field(key string) (json.RawMessage, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// AnnotatedReview joins a review with its aspect ratings.
type AnnotatedReview struct {
	Review
	Aspects AspectScores
}
