package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// ScoreStore persists class indexes by text digest.
type ScoreStore interface {
	GetScore(ctx context.Context, digest string) (int, bool, error)
	SetScore(ctx context.Context, digest string, class int) error
}

// CachedScorer memoizes another Scorer. Store failures are logged and the
// wrapped scorer is used directly.
type CachedScorer struct {
	next  Scorer
	store ScoreStore
}

func NewCachedScorer(next Scorer, store ScoreStore) *CachedScorer {
	return &CachedScorer{next: next, store: store}
}

func (c *CachedScorer) Score(ctx context.Context, text string) (int, error) {
	digest := Digest(text)

	class, ok, err := c.store.GetScore(ctx, digest)
	if err != nil {
		slog.Warn("[ScoreCache] Lookup failed, scoring directly", slog.String("error", err.Error()))
	} else if ok && class >= 0 && class < NumClasses {
		return class, nil
	}

	class, err = c.next.Score(ctx, text)
	if err != nil {
		return 0, err
	}

	if err := c.store.SetScore(ctx, digest, class); err != nil {
		slog.Warn("[ScoreCache] Store failed", slog.String("error", err.Error()))
	}
	return class, nil
}

func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
