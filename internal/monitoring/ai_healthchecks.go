package monitoring

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const HEALTHCHECK_TIMEOUT = 15 * time.Second

var ErrAnalyzerUnhealthy = errors.New("sentiment analyzer is unhealthy")

// AnalyzerChecker is satisfied by clients.HuggingFaceClient.
type AnalyzerChecker interface {
	AnalyzerHealthCheck(ctx context.Context) bool
}

// CheckAnalyzer runs one health check before a batch starts so a dead
// analyzer fails the run up front.
func CheckAnalyzer(ctx context.Context, checker AnalyzerChecker) error {
	ctx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	if !checker.AnalyzerHealthCheck(ctx) {
		slog.Warn("[HealthCheck] Analyzer is unhealthy")
		return ErrAnalyzerUnhealthy
	}
	slog.Info("[HealthCheck] Analyzer is healthy")
	return nil
}
