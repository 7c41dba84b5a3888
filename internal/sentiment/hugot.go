package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const DefaultModelName = "nlptown/bert-base-multilingual-uncased-sentiment"

// HugotScorer runs a text-classification ONNX model through hugot. The
// pipeline does not truncate, so inputs are cut to maxTokens model tokens
// with the model's own tokenizer first.
type HugotScorer struct {
	session   *hugot.Session
	pipeline  *pipelines.TextClassificationPipeline
	tokenizer *modelTokenizer
	maxTokens int
}

// NewHugotScorer loads modelName from modelDir, downloading it first when the
// directory does not hold it yet.
func NewHugotScorer(modelName, modelDir string, maxTokens int) (*HugotScorer, error) {
	modelPath, err := ensureModel(modelName, modelDir)
	if err != nil {
		return nil, err
	}

	tokenizer, err := newModelTokenizer(modelPath)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		tokenizer.Close()
		slog.Error("[HugotScorer] Failed to initialize Hugot session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "aspectSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		tokenizer.Close()
		slog.Error("[HugotScorer] Failed to initialize pipeline", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	slog.Info("[HugotScorer] Pipeline ready", slog.String("model", modelName), slog.String("path", modelPath))
	return &HugotScorer{session: session, pipeline: pipeline, tokenizer: tokenizer, maxTokens: maxTokens}, nil
}

func ensureModel(modelName, modelDir string) (string, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, modelDirName(modelName))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotScorer] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat model path: %w", err)
	}

	slog.Info("[HugotScorer] Model not found, downloading...", slog.String("model", modelName))
	downloaded, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", modelName, err)
	}
	slog.Info("[HugotScorer] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}

// modelDirName mirrors the directory layout hugot.DownloadModel produces.
func modelDirName(modelName string) string {
	out := []rune(modelName)
	for i, r := range out {
		if r == '/' {
			out[i] = '_'
		}
	}
	return string(out)
}

func (h *HugotScorer) Score(_ context.Context, text string) (int, error) {
	output, err := h.pipeline.RunPipeline([]string{TruncateTokens(h.tokenizer, text, h.maxTokens)})
	if err != nil {
		return 0, fmt.Errorf("sentiment pipeline failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return 0, ErrEmptyOutput
	}

	best := output.ClassificationOutputs[0][0]
	for _, c := range output.ClassificationOutputs[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return ClassFromLabel(best.Label)
}

func (h *HugotScorer) Close() {
	h.session.Destroy()
	h.tokenizer.Close()
}
