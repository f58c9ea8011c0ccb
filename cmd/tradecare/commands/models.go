package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/tradecare/backend/internal/forecast"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Check the prediction model artifacts",
	Long: `Reports which model artifacts exist in MODELS_DIR and whether they load.

Required artifacts:
  regression_model, classification_model, scaler, feature_names`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := forecast.NewStore(cfg.ModelsDir)
	status := store.Status()

	fmt.Printf("Models directory: %s\n\n", store.Dir())
	for _, name := range forecast.RequiredArtifacts() {
		mark := "✗"
		if status[name] {
			mark = "✓"
		}
		fmt.Printf("  %s %s\n", mark, name)
	}

	if _, err := store.LoadModels(); err != nil {
		fmt.Printf("\n❌ Models not loaded: %v\n", err)
		return fmt.Errorf("models not loaded: %w", err)
	}

	fmt.Println("\n✅ All models loaded")
	return nil
}
