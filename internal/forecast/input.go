package forecast

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MarketInput is the prediction form: current market conditions as entered by the user.
// Bounds match the dashboard sliders.
type MarketInput struct {
	Return1h  float64 `json:"return_1h" validate:"gte=-10,lte=10"`   // %
	Return4h  float64 `json:"return_4h" validate:"gte=-20,lte=20"`   // %
	Return12h float64 `json:"return_12h" validate:"gte=-30,lte=30"`  // %
	Return24h float64 `json:"return_24h" validate:"gte=-40,lte=40"`  // %
	RSI       float64 `json:"rsi" validate:"gte=0,lte=100"`          // 14-period

	CurrentPrice float64 `json:"current_price" validate:"gte=1000,lte=150000"` // $
	MA10         float64 `json:"ma_10" validate:"gte=1000,lte=150000"`
	MA20         float64 `json:"ma_20" validate:"gte=1000,lte=150000"`
	MA50         float64 `json:"ma_50" validate:"gte=1000,lte=150000"`

	VolumeChange  float64 `json:"volume_change" validate:"gte=-100,lte=200"` // %
	VolumeRatio   float64 `json:"volume_ratio" validate:"gte=0.1,lte=5"`     // vs 10-period average
	Volatility24h float64 `json:"volatility_24h" validate:"gte=0,lte=0.1"`   // std of 1h returns
	PriceRange    float64 `json:"price_range" validate:"gte=0,lte=0.1"`      // (high-low)/close
}

// DefaultMarketInput returns the form's initial values
func DefaultMarketInput() MarketInput {
	return MarketInput{
		RSI:           50,
		CurrentPrice:  50000,
		MA10:          49500,
		MA20:          49000,
		MA50:          48000,
		VolumeRatio:   1,
		Volatility24h: 0.02,
		PriceRange:    0.02,
	}
}

// DistFromMA10 is the distance of the price from MA10, in percent
func (in MarketInput) DistFromMA10() float64 {
	return (in.CurrentPrice - in.MA10) / in.MA10 * 100
}

// DistFromMA20 is the distance of the price from MA20, in percent
func (in MarketInput) DistFromMA20() float64 {
	return (in.CurrentPrice - in.MA20) / in.MA20 * 100
}

// FeatureNames returns the model feature layout
// ⭐ SSOT: 모델 입력 피처 순서
func FeatureNames() []string {
	return []string{
		"return_1h", "return_4h", "return_12h", "return_24h",
		"rsi", "ma_10", "ma_20", "ma_50",
		"dist_from_ma10", "dist_from_ma20",
		"volume_change", "volume_ratio", "volatility_24h", "price_range",
	}
}

// Features maps the form to the unscaled feature vector.
// Percent inputs are converted to fractions.
func (in MarketInput) Features() []float64 {
	return []float64{
		in.Return1h / 100,
		in.Return4h / 100,
		in.Return12h / 100,
		in.Return24h / 100,
		in.RSI,
		in.MA10,
		in.MA20,
		in.MA50,
		in.DistFromMA10() / 100,
		in.DistFromMA20() / 100,
		in.VolumeChange / 100,
		in.VolumeRatio,
		in.Volatility24h,
		in.PriceRange,
	}
}

// InputError reports every out-of-range form field
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range FeatureNamesWithPrice() {
		if msg, ok := e.Fields[name]; ok {
			parts = append(parts, name+": "+msg)
		}
	}
	return "invalid market input: " + strings.Join(parts, "; ")
}

// FeatureNamesWithPrice is the form field order (features plus current_price)
func FeatureNamesWithPrice() []string {
	return []string{
		"return_1h", "return_4h", "return_12h", "return_24h", "rsi",
		"current_price", "ma_10", "ma_20", "ma_50",
		"volume_change", "volume_ratio", "volatility_24h", "price_range",
	}
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func validateInput(v *validator.Validate, in MarketInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate market input: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gte":
			fields[fe.Field()] = "must be >= " + fe.Param()
		case "lte":
			fields[fe.Field()] = "must be <= " + fe.Param()
		default:
			fields[fe.Field()] = "failed " + fe.Tag()
		}
	}
	return &InputError{Fields: fields}
}
