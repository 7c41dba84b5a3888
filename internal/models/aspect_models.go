package models

import (
	"bytes"
	"encoding/json"
)

type Aspect string

const (
	AspectFood       Aspect = "food"
	AspectService    Aspect = "service"
	AspectAtmosphere Aspect = "atmosphere"
	AspectPricing    Aspect = "pricing"
)

// Aspects lists every aspect in reporting order.
var Aspects = []Aspect{AspectFood, AspectService, AspectAtmosphere, AspectPricing}

const (
	NeutralRating = 3
	MinRating     = 1
	MaxRating     = 5
)

// IsAspect reports whether name is one of the four known aspects.
func IsAspect(name string) bool {
	for _, a := range Aspects {
		if string(a) == name {
			return true
		}
	}
	return false
}

// AspectScores maps each aspect to a 1-5 rating.
type AspectScores map[Aspect]int

// NeutralScores returns a score set with every aspect at NeutralRating.
func NeutralScores() AspectScores {
	scores := make(AspectScores, len(Aspects))
	for _, a := range Aspects {
		scores[a] = NeutralRating
	}
	return scores
}

// AspectAverages maps each aspect to its mean rating.
type AspectAverages map[Aspect]float64

func (a AspectAverages) MarshalJSON() ([]byte, error) {
	return marshalInAspectOrder(func(aspect Aspect) (any, bool) {
		v, ok := a[aspect]
		return v, ok
	})
}

// Suggestion is the improvement record for one below-threshold aspect.
type Suggestion struct {
	AverageRating float64       `json:"average_rating"`
	Keywords      KeywordCounts `json:"keywords_from_negative_reviews"`
	Text          string        `json:"suggestion"`
}

// Suggestions maps flagged aspects to their suggestion.
type Suggestions map[Aspect]Suggestion

func (s Suggestions) MarshalJSON() ([]byte, error) {
	return marshalInAspectOrder(func(aspect Aspect) (any, bool) {
		v, ok := s[aspect]
		return v, ok
	})
}

// marshalInAspectOrder writes a JSON object keyed by aspect, in Aspects order
// instead of the alphabetical order encoding/json uses for maps.
func marshalInAspectOrder(get func(Aspect) (any, bool)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, aspect := range Aspects {
		v, ok := get(aspect)
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, _ := json.Marshal(string(aspect))
		buf.Write(key)
		buf.WriteByte(':')

		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
