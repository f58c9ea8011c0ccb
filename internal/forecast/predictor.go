package forecast

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/tradecare/backend/pkg/logger"
	"github.com/wonny/tradecare/backend/pkg/metrics"
)

// RiskLevel buckets the profitability probability
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low Risk"
	RiskMedium RiskLevel = "Medium Risk"
	RiskHigh   RiskLevel = "High Risk"
)

// RiskFor maps a profitability probability to a risk level
func RiskFor(probability float64) RiskLevel {
	switch {
	case probability > 0.65:
		return RiskLow
	case probability < 0.40:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// FeatureInfluence is one row of the feature interpretation table
type FeatureInfluence struct {
	Feature        string `json:"feature"`
	Input          string `json:"input"`
	Interpretation string `json:"interpretation"`
}

// Prediction is the combined output of both models
type Prediction struct {
	// 4-hour price movement (regression)
	ExpectedChange float64 `json:"expected_change"` // fraction, 0.01 = +1%
	ExpectedPrice  float64 `json:"expected_price"`
	Rising         bool    `json:"rising"`

	// Trade profitability (classification)
	Probability float64   `json:"probability"`
	Profitable  bool      `json:"profitable"`
	RiskLevel   RiskLevel `json:"risk_level"`

	DistFromMA10 float64            `json:"dist_from_ma10"` // %
	DistFromMA20 float64            `json:"dist_from_ma20"` // %
	Influences   []FeatureInfluence `json:"influences"`
}

// ModelLoader provides the loaded artifacts
type ModelLoader interface {
	LoadModels() (*Models, error)
}

// Predictor turns a market input into predictions
// ⭐ SSOT: 예측 폼 → 피처 → 모델 추론
type Predictor struct {
	models   ModelLoader
	validate *validator.Validate
	logger   *logger.Logger
}

// NewPredictor creates a predictor over the given artifact loader
func NewPredictor(models ModelLoader, log *logger.Logger) *Predictor {
	return &Predictor{
		models:   models,
		validate: newValidator(),
		logger:   log.WithField("module", "forecast"),
	}
}

// Validate checks form bounds without running the models
func (p *Predictor) Validate(in MarketInput) error {
	return validateInput(p.validate, in)
}

// Predict validates the input, scales the features and runs both models
func (p *Predictor) Predict(in MarketInput) (*Prediction, error) {
	if err := p.Validate(in); err != nil {
		return nil, err
	}

	m, err := p.models.LoadModels()
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}

	scaled := m.Scaler.Transform(in.Features())

	change := m.Regression.Predict(scaled)
	prob := m.Classification.Probability(scaled)

	pred := &Prediction{
		ExpectedChange: change,
		ExpectedPrice:  in.CurrentPrice * (1 + change),
		Rising:         change > 0,
		Probability:    prob,
		Profitable:     m.Classification.Predict(scaled) == 1,
		RiskLevel:      RiskFor(prob),
		DistFromMA10:   in.DistFromMA10(),
		DistFromMA20:   in.DistFromMA20(),
		Influences:     Interpret(in),
	}

	metrics.Predictions.WithLabelValues(string(pred.RiskLevel)).Inc()

	p.logger.WithFields(map[string]interface{}{
		"expected_change": change,
		"probability":     prob,
		"risk_level":      pred.RiskLevel,
	}).Debug("Prediction served")

	return pred, nil
}

// Interpret builds the feature interpretation table of the most influential inputs
func Interpret(in MarketInput) []FeatureInfluence {
	dist := in.DistFromMA10()

	rsi := "Neutral"
	switch {
	case in.RSI > 70:
		rsi = "Overbought"
	case in.RSI < 30:
		rsi = "Oversold"
	}

	return []FeatureInfluence{
		{"4h Return", fmt.Sprintf("%+.2f%%", in.Return4h), pick(in.Return4h > 0, "Bullish", "Bearish")},
		{"12h Return", fmt.Sprintf("%+.2f%%", in.Return12h), pick(in.Return12h > 0, "Uptrend", "Downtrend")},
		{"1h Return", fmt.Sprintf("%+.2f%%", in.Return1h), pick(in.Return1h > 0, "Rising", "Falling")},
		{"Dist from MA10", fmt.Sprintf("%+.2f%%", dist), pick(dist > 0, "Above MA", "Below MA")},
		{"RSI", fmt.Sprintf("%.1f", in.RSI), rsi},
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
