package models

type SentimentRequest struct {
	Text string `json:"text"`
}

// SentimentResponse mirrors a text-classification result, e.g.
// {"label": "4 stars", "score": 0.61}.
type SentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
