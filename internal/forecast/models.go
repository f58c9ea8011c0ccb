package forecast

import (
	"fmt"
	"math"
)

// LinearModel is a fitted linear regression
type LinearModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Predict returns w·x + b
func (m LinearModel) Predict(x []float64) float64 {
	y := m.Intercept
	for i, w := range m.Coefficients {
		y += w * x[i]
	}
	return y
}

// LogisticModel is a fitted binary logistic regression
type LogisticModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Probability returns P(class = 1 | x)
func (m LogisticModel) Probability(x []float64) float64 {
	z := m.Intercept
	for i, w := range m.Coefficients {
		z += w * x[i]
	}
	return 1 / (1 + math.Exp(-z))
}

// Predict returns the class at the 0.5 decision boundary
func (m LogisticModel) Predict(x []float64) int {
	if m.Probability(x) > 0.5 {
		return 1
	}
	return 0
}

// StandardScaler centers and scales each feature
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns (x - mean) / scale
func (s StandardScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = (x[i] - s.Mean[i]) / s.Scale[i]
	}
	return out
}

// Models bundles the loaded predictor artifacts
type Models struct {
	Regression     LinearModel
	Classification LogisticModel
	Scaler         StandardScaler
	FeatureNames   []string
}

// Validate checks that every artifact agrees on the feature layout
func (m *Models) Validate() error {
	want := FeatureNames()
	if len(m.FeatureNames) != len(want) {
		return fmt.Errorf("feature_names: expected %d features, got %d", len(want), len(m.FeatureNames))
	}
	for i, name := range want {
		if m.FeatureNames[i] != name {
			return fmt.Errorf("feature_names[%d]: expected %s, got %s", i, name, m.FeatureNames[i])
		}
	}

	n := len(want)
	checks := []struct {
		name string
		got  int
	}{
		{"regression_model coefficients", len(m.Regression.Coefficients)},
		{"classification_model coefficients", len(m.Classification.Coefficients)},
		{"scaler mean", len(m.Scaler.Mean)},
		{"scaler scale", len(m.Scaler.Scale)},
	}
	for _, c := range checks {
		if c.got != n {
			return fmt.Errorf("%s: expected %d values, got %d", c.name, n, c.got)
		}
	}

	for i, s := range m.Scaler.Scale {
		if s == 0 || math.IsNaN(s) {
			return fmt.Errorf("scaler scale[%d] must be non-zero", i)
		}
	}

	return nil
}
