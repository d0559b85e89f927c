// Package predictor provides the client for the fight prediction service.
package predictor

import "errors"

var (
	// ErrPredictorUnavailable indicates the prediction service is unreachable
	ErrPredictorUnavailable = errors.New("prediction service unavailable")

	// ErrInvalidPrediction indicates the prediction response is invalid
	ErrInvalidPrediction = errors.New("invalid prediction response")

	// ErrConnectionFailed indicates the HTTP request could not be completed
	ErrConnectionFailed = errors.New("prediction request failed")
)
