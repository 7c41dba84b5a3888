package pipeline

import (
	"context"
	"fmt"

	"github.com/spacesedan/aspectflow/config"
	"github.com/spacesedan/aspectflow/internal/clients"
	"github.com/spacesedan/aspectflow/internal/monitoring"
	"github.com/spacesedan/aspectflow/internal/sentiment"
)

// BuildScorer assembles the configured sentiment backend, wrapped in the
// Valkey cache when an address is set. The returned close func releases
// model sessions and connections.
func BuildScorer(ctx context.Context, cfg *config.Config) (sentiment.Scorer, func(), error) {
	var (
		scorer  sentiment.Scorer
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Scorer {
	case config.ScorerVader:
		scorer = sentiment.NewVaderScorer(cfg.MaxTokens)
	case config.ScorerRemote:
		client := clients.NewHuggingFaceClient(cfg.RemoteEndpoint, cfg.RemoteHealthEndpoint, cfg.RemoteTimeout())
		if err := monitoring.CheckAnalyzer(ctx, client); err != nil {
			return nil, closeAll, err
		}
		scorer = sentiment.NewRemoteScorer(client, cfg.MaxTokens)
	case config.ScorerHugot:
		hs, err := sentiment.NewHugotScorer(cfg.ModelName, cfg.ModelDir, cfg.MaxTokens)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, hs.Close)
		scorer = hs
	default:
		return nil, closeAll, fmt.Errorf("%w: %q", sentiment.ErrUnknownScorer, cfg.Scorer)
	}

	if cfg.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
			TTL:      cfg.CacheTTL(),
		})
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, vc.Close)
		scorer = sentiment.NewCachedScorer(scorer, vc)
	}

	return scorer, closeAll, nil
}
