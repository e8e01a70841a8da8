package services

import (
	"context"
	"fmt"
	"math"
	"time"

	apperrors "listing-pricer/internal/errors"
	"listing-pricer/internal/models"
	"listing-pricer/pkg/logger"
	"listing-pricer/pkg/metrics"
)

// PriceModel scores one feature row.
type PriceModel interface {
	Predict(ctx context.Context, columns []string, values []float64) (float64, error)
}

type PredictionResult struct {
	BuildResult
	Price    float64
	RawPrice float64
}

// PredictionService builds a listing's features and prices them with the model.
type PredictionService struct {
	builder *FeatureBuilder
	model   PriceModel
}

func NewPredictionService(builder *FeatureBuilder, model PriceModel) *PredictionService {
	return &PredictionService{builder: builder, model: model}
}

// BuildFeatures exposes the feature vector without calling the model.
func (s *PredictionService) BuildFeatures(ctx context.Context, input models.ListingInput) (BuildResult, error) {
	return s.builder.Build(ctx, input)
}

// Predict returns the model price rounded for display alongside the raw output.
func (s *PredictionService) Predict(ctx context.Context, input models.ListingInput) (PredictionResult, error) {
	built, err := s.builder.Build(ctx, input)
	if err != nil {
		return PredictionResult{}, err
	}
	if s.model == nil {
		return PredictionResult{}, fmt.Errorf("%w: no model configured", apperrors.ErrModelPrediction)
	}

	start := time.Now()
	raw, err := s.model.Predict(ctx, built.Vector.Columns(), built.Vector.Values())
	metrics.ModelPredictionDuration.Observe(time.Since(start).Seconds())
	if err == nil && (math.IsNaN(raw) || math.IsInf(raw, 0)) {
		err = fmt.Errorf("non-finite prediction %v", raw)
	}
	if err != nil {
		metrics.ModelPredictionsTotal.WithLabelValues("error").Inc()
		logger.GlobalLogger.Errorf("price model failed for %q: %v", input.Address, err)
		return PredictionResult{}, fmt.Errorf("%w: %v", apperrors.ErrModelPrediction, err)
	}
	metrics.ModelPredictionsTotal.WithLabelValues("success").Inc()

	return PredictionResult{
		BuildResult: built,
		Price:       RoundPrice(raw),
		RawPrice:    raw,
	}, nil
}

// RoundPrice clamps negative model output to zero and rounds to the nearest 5.
func RoundPrice(raw float64) float64 {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	return math.Round(raw/5) * 5
}
