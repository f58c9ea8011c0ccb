package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/tradecare/backend/internal/forecast"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run the prediction demo on market inputs",
	Long: `Runs both models on the given market conditions.
Omitted flags take the dashboard form defaults.

Educational demonstration only. Predictions have no statistical reliability.

Example:
  go run ./cmd/tradecare predict --rsi 72 --return-4h 1.5 --price 51000`,
	RunE: runPredict,
}

var predictInput = forecast.DefaultMarketInput()

func init() {
	rootCmd.AddCommand(predictCmd)

	f := predictCmd.Flags()
	f.Float64Var(&predictInput.Return1h, "return-1h", predictInput.Return1h, "1h return (%)")
	f.Float64Var(&predictInput.Return4h, "return-4h", predictInput.Return4h, "4h return (%)")
	f.Float64Var(&predictInput.Return12h, "return-12h", predictInput.Return12h, "12h return (%)")
	f.Float64Var(&predictInput.Return24h, "return-24h", predictInput.Return24h, "24h return (%)")
	f.Float64Var(&predictInput.RSI, "rsi", predictInput.RSI, "RSI (14)")
	f.Float64Var(&predictInput.CurrentPrice, "price", predictInput.CurrentPrice, "current price ($)")
	f.Float64Var(&predictInput.MA10, "ma-10", predictInput.MA10, "10-period moving average ($)")
	f.Float64Var(&predictInput.MA20, "ma-20", predictInput.MA20, "20-period moving average ($)")
	f.Float64Var(&predictInput.MA50, "ma-50", predictInput.MA50, "50-period moving average ($)")
	f.Float64Var(&predictInput.VolumeChange, "volume-change", predictInput.VolumeChange, "volume change (%)")
	f.Float64Var(&predictInput.VolumeRatio, "volume-ratio", predictInput.VolumeRatio, "volume vs 10-period average")
	f.Float64Var(&predictInput.Volatility24h, "volatility-24h", predictInput.Volatility24h, "24h volatility")
	f.Float64Var(&predictInput.PriceRange, "price-range", predictInput.PriceRange, "(high-low)/close")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newCLILogger(cfg)
	predictor := forecast.NewPredictor(forecast.NewStore(cfg.ModelsDir), log)

	pred, err := predictor.Predict(predictInput)
	if err != nil {
		return err
	}

	printSection("4-Hour Price Movement")
	direction := "📉 falling"
	if pred.Rising {
		direction = "📈 rising"
	}
	fmt.Printf("  Expected change : %+.2f%% (%s)\n", pred.ExpectedChange*100, direction)
	fmt.Printf("  Expected price  : $%.2f\n", pred.ExpectedPrice)

	printSection("Trade Profitability")
	verdict := "Not profitable"
	if pred.Profitable {
		verdict = "Profitable"
	}
	fmt.Printf("  Probability     : %.1f%% (%s)\n", pred.Probability*100, verdict)
	fmt.Printf("  Risk level      : %s\n", pred.RiskLevel)

	printSection("Feature Interpretation")
	fmt.Printf("  Distance from MA10 : %+.2f%%\n", pred.DistFromMA10)
	fmt.Printf("  Distance from MA20 : %+.2f%%\n", pred.DistFromMA20)
	for _, inf := range pred.Influences {
		fmt.Printf("  %-16s %-10s %s\n", inf.Feature, inf.Input, inf.Interpretation)
	}

	fmt.Println()
	fmt.Println("⚠ Educational demonstration only. Predictions have no statistical reliability.")
	return nil
}
