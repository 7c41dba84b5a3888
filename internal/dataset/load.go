// Package dataset reads the review input file.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spacesedan/aspectflow/internal/models"
)

const ReviewField = "review"

var (
	ErrReadInput    = errors.New("read input")
	ErrParseInput   = errors.New("parse input")
	ErrInvalidInput = errors.New("invalid input")
)

const reviewsSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "review": { "type": ["string", "null"] }
    }
  }
}`

var reviewsSchemaLoader = gojsonschema.NewStringLoader(reviewsSchemaJSON)

// Load reads a JSON array of review objects from path.
func Load(path string) ([]models.Review, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadInput, path, err)
	}
	reviews, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("[Dataset] Loaded reviews", slog.String("path", path), slog.Int("count", len(reviews)))
	return reviews, nil
}

// Parse decodes and validates raw input. Every record keeps its fields in
// source order.
func Parse(raw []byte) ([]models.Review, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrParseInput)
	}

	result, err := gojsonschema.Validate(reviewsSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseInput, err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(issues, "; "))
	}

	records := gjson.ParseBytes(raw).Array()
	reviews := make([]models.Review, 0, len(records))
	for _, rec := range records {
		var review models.Review
		rec.ForEach(func(key, value gjson.Result) bool {
			review.Fields = append(review.Fields, models.ReviewField{
				Key:   key.String(),
				Value: json.RawMessage(value.Raw),
			})
			if key.String() == ReviewField && value.Type == gjson.String {
				review.Text = value.String()
				review.HasText = true
			}
			return true
		})
		reviews = append(reviews, review)
	}
	return reviews, nil
}
