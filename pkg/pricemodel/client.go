// Package pricemodel calls a served price-prediction model over HTTP.
package pricemodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// ErrInvalidPrediction is returned when the model answers with a non-finite value.
var ErrInvalidPrediction = errors.New("model returned a non-finite prediction")

// HTTPClient posts one feature row per request to a model endpoint.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// PredictRequest carries the column order alongside the values so the server can
// check it against the order it was trained on.
type PredictRequest struct {
	Columns   []string    `json:"columns"`
	Instances [][]float64 `json:"instances"`
}

// PredictResponse accepts either a single "prediction" or a "predictions" array.
type PredictResponse struct {
	Prediction  *float64  `json:"prediction,omitempty"`
	Predictions []float64 `json:"predictions,omitempty"`
}

// Predict returns the raw model output for a single feature row.
func (c *HTTPClient) Predict(ctx context.Context, columns []string, values []float64) (float64, error) {
	if len(columns) != len(values) {
		return 0, fmt.Errorf("column count %d does not match value count %d", len(columns), len(values))
	}
	body, err := json.Marshal(PredictRequest{Columns: columns, Instances: [][]float64{values}})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model service returned status: %d", resp.StatusCode)
	}

	var out PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode model response: %w", err)
	}

	var price float64
	switch {
	case out.Prediction != nil:
		price = *out.Prediction
	case len(out.Predictions) > 0:
		price = out.Predictions[0]
	default:
		return 0, fmt.Errorf("model response carried no prediction")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrediction
	}
	return price, nil
}
