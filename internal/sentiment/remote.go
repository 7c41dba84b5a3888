package sentiment

import (
	"context"

	"github.com/spacesedan/aspectflow/internal/clients"
)

// RemoteScorer asks a hosted analyzer for a star label.
type RemoteScorer struct {
	client    *clients.HuggingFaceClient
	maxTokens int
}

func NewRemoteScorer(client *clients.HuggingFaceClient, maxTokens int) *RemoteScorer {
	return &RemoteScorer{client: client, maxTokens: maxTokens}
}

func (r *RemoteScorer) Score(ctx context.Context, text string) (int, error) {
	resp, err := r.client.Analyze(ctx, Truncate(text, r.maxTokens))
	if err != nil {
		return 0, err
	}
	return ClassFromLabel(resp.Label)
}
