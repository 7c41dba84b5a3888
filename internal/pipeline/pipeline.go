// Package pipeline runs one batch: load, classify, aggregate, suggest, report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/aspectflow/config"
	"github.com/spacesedan/aspectflow/internal/aspects"
	"github.com/spacesedan/aspectflow/internal/dataset"
	"github.com/spacesedan/aspectflow/internal/keywords"
	"github.com/spacesedan/aspectflow/internal/models"
	"github.com/spacesedan/aspectflow/internal/monitoring"
	"github.com/spacesedan/aspectflow/internal/processing"
	"github.com/spacesedan/aspectflow/internal/report"
	"github.com/spacesedan/aspectflow/internal/sentiment"
)

// Run executes the batch with scorer and prints the summary to out. Nothing
// is written to the output directory unless every step succeeds.
func Run(ctx context.Context, cfg *config.Config, scorer sentiment.Scorer, out io.Writer) (report.Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := slog.With(slog.String("run_id", runID))
	metrics := monitoring.NewRunMetrics()

	log.Info("[Pipeline] Starting run",
		slog.String("input", cfg.InputFile),
		slog.String("scorer", cfg.Scorer),
		slog.String("policy", aspects.WholeReviewPerAspect))

	triggers, err := aspects.DefaultTriggers().WithOverrides(cfg.Aspects)
	if err != nil {
		return report.Result{}, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	reviews, err := dataset.Load(cfg.InputFile)
	if err != nil {
		return report.Result{}, err
	}

	classifier := aspects.NewClassifier(triggers, metrics.InstrumentScorer(scorer), aspects.FailurePolicy(cfg.ScoreFailure))
	table, err := classifier.Annotate(ctx, reviews)
	if err != nil {
		return report.Result{}, fmt.Errorf("classification failed: %w", err)
	}
	metrics.ReviewsProcessed(len(table))
	log.Info("[Pipeline] Annotated reviews", slog.Int("count", len(table)))

	averages, err := processing.Aggregate(table)
	if err != nil {
		return report.Result{}, err
	}

	texts := reviewTexts(table)
	res := report.Result{
		Table:       table,
		Averages:    averages,
		Suggestions: processing.Suggest(averages, table, cfg.Threshold, cfg.SuggestionKeywords),
		TopKeywords: keywords.Extract(texts, cfg.TopKeywords),
	}

	if cfg.WordCloud {
		report.ShowWordCloud(out, keywords.Extract(texts, cfg.WordCloudWords))
	}

	paths, err := report.Write(cfg.OutputDir, res)
	if err != nil {
		return res, err
	}
	report.PrintSummary(out, res, paths)

	took := time.Since(start)
	metrics.RecordResult(res.Averages, res.Suggestions, took)
	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("[Pipeline] Metrics export failed", slog.String("error", err.Error()))
		}
	}

	log.Info("[Pipeline] Run complete",
		slog.Duration("elapsed", took),
		slog.Int("suggestions", len(res.Suggestions)))
	return res, nil
}

func reviewTexts(table []models.AnnotatedReview) []string {
	texts := make([]string, 0, len(table))
	for _, row := range table {
		if row.HasText {
			texts = append(texts, row.Text)
		}
	}
	return texts
}
