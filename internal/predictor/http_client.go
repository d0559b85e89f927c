package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/octagon-edge/internal/config"
)

// HTTPClient talks to the prediction service over HTTP JSON
type HTTPClient struct {
	client        *http.Client
	baseURL       string
	model         string
	retryAttempts int
	logger        *logrus.Logger
}

// NewHTTPClient creates a new HTTP client for the prediction service
func NewHTTPClient(cfg *config.PredictorConfig, logger *logrus.Logger) *HTTPClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL:       cfg.URL,
		model:         cfg.Model,
		retryAttempts: cfg.RetryAttempts,
		logger:        logger,
	}
}

// predictRequest represents the prediction request payload
type predictRequest struct {
	Fighter1 string `json:"fighter1"`
	Fighter2 string `json:"fighter2"`
	Model    string `json:"model"`
}

// predictResponse represents the prediction response
type predictResponse struct {
	PredictedWinner string  `json:"predicted_winner"`
	Confidence      float64 `json:"confidence"`
	Model           string  `json:"model"`
}

// Predict requests a prediction for a single matchup
func (c *HTTPClient) Predict(ctx context.Context, fighter1, fighter2 string) (*PredictionResult, error) {
	start := time.Now()

	jsonData, err := json.Marshal(predictRequest{
		Fighter1: fighter1,
		Fighter2: fighter2,
		Model:    c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, "POST", c.baseURL+"/api/v1/predict", jsonData)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("prediction request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var predResp predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result, err := c.validate(fighter1, fighter2, &predResp)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"fighter1":   fighter1,
		"fighter2":   fighter2,
		"winner":     result.PredictedWinner,
		"confidence": result.Confidence,
		"duration":   time.Since(start),
	}).Debug("Prediction received")

	return result, nil
}

// BatchPredict requests predictions for a full card in one round trip
func (c *HTTPClient) BatchPredict(ctx context.Context, requests []MatchupRequest) ([]*PredictionResult, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	payload := struct {
		Matchups []MatchupRequest `json:"matchups"`
		Model    string           `json:"model"`
	}{Matchups: requests, Model: c.model}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, "POST", c.baseURL+"/api/v1/predict/batch", jsonData)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("batch prediction failed with status %d: %s", resp.StatusCode, string(body))
	}

	var batchResp struct {
		Predictions []predictResponse `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&batchResp); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}

	if len(batchResp.Predictions) != len(requests) {
		return nil, fmt.Errorf("%w: expected %d predictions, got %d",
			ErrInvalidPrediction, len(requests), len(batchResp.Predictions))
	}

	results := make([]*PredictionResult, len(requests))
	for i := range batchResp.Predictions {
		result, err := c.validate(requests[i].Fighter1, requests[i].Fighter2, &batchResp.Predictions[i])
		if err != nil {
			return nil, err
		}
		results[i] = result
	}

	return results, nil
}

// HealthCheck checks prediction service health
func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPredictorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrPredictorUnavailable, resp.StatusCode)
	}

	return nil
}

// Model returns the configured model identifier
func (c *HTTPClient) Model() string {
	return c.model
}

func (c *HTTPClient) doWithRetry(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			c.logger.WithError(err).WithField("attempt", attempt+1).Warn("Prediction request failed")
			continue
		}

		if resp.StatusCode >= 500 && attempt < c.retryAttempts {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, lastErr)
}

func (c *HTTPClient) validate(fighter1, fighter2 string, resp *predictResponse) (*PredictionResult, error) {
	if resp.PredictedWinner != fighter1 && resp.PredictedWinner != fighter2 {
		return nil, fmt.Errorf("%w: winner %q is not in matchup %s vs %s",
			ErrInvalidPrediction, resp.PredictedWinner, fighter1, fighter2)
	}
	if resp.Confidence < 0 || resp.Confidence > 100 {
		return nil, fmt.Errorf("%w: confidence %.2f out of range", ErrInvalidPrediction, resp.Confidence)
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}

	return &PredictionResult{
		Fighter1:        fighter1,
		Fighter2:        fighter2,
		PredictedWinner: resp.PredictedWinner,
		Confidence:      resp.Confidence,
		Model:           model,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}
