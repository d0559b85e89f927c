package predictor

import (
	"context"
	"time"
)

// PredictionResult is the model's verdict on a single matchup. Confidence
// is expressed on a 0-100 scale.
type PredictionResult struct {
	Fighter1        string    `json:"fighter1"`
	Fighter2        string    `json:"fighter2"`
	PredictedWinner string    `json:"predicted_winner"`
	Confidence      float64   `json:"confidence"`
	Model           string    `json:"model"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// MatchupRequest identifies a single fight to predict
type MatchupRequest struct {
	Fighter1 string `json:"fighter1"`
	Fighter2 string `json:"fighter2"`
}

// Predictor produces win predictions for matchups
type Predictor interface {
	Predict(ctx context.Context, fighter1, fighter2 string) (*PredictionResult, error)
	BatchPredict(ctx context.Context, requests []MatchupRequest) ([]*PredictionResult, error)
	HealthCheck(ctx context.Context) error
}
