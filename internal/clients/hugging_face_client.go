package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/aspectflow/internal/models"
)

// HuggingFaceClient talks to a hosted sentiment analyzer. Calls are made once;
// a failed request is returned to the caller as is.
type HuggingFaceClient struct {
	Client         *http.Client
	AnalyzeURL     string
	HealthCheckURL string
}

func NewHuggingFaceClient(analyzeURL, healthCheckURL string, timeout time.Duration) *HuggingFaceClient {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", timeout),
		slog.String("endpoint", analyzeURL))
	return &HuggingFaceClient{
		Client:         &http.Client{Timeout: timeout},
		AnalyzeURL:     analyzeURL,
		HealthCheckURL: healthCheckURL,
	}
}

func (h *HuggingFaceClient) Analyze(ctx context.Context, text string) (models.SentimentResponse, error) {
	var result models.SentimentResponse
	start := time.Now()

	if err := h.postJSON(ctx, h.AnalyzeURL, models.SentimentRequest{Text: text}, &result); err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return result, err
	}

	slog.Debug("[HuggingFaceClient] Sentiment Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// AnalyzerHealthCheck reports whether the analyzer answers its health endpoint.
// An unset endpoint counts as healthy.
func (h *HuggingFaceClient) AnalyzerHealthCheck(ctx context.Context) bool {
	if h.HealthCheckURL == "" {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.HealthCheckURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Request failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode, preview(respBody))
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			slog.String("raw_response", preview(respBody)),
			slog.Int("raw_response_length", len(respBody)))

		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func preview(respBody []byte) string {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}
