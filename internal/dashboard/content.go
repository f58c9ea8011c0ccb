package dashboard

func summaryPage() Page {
	return Page{
		Slug:  SlugSummary,
		Title: "Project Summary",
		Icon:  "📊",
		Sections: []Section{
			{"Educational ML Tool for Bitcoin Trading Risk Assessment",
				"**EDUCATIONAL TOOL ONLY - NOT FOR ACTUAL TRADING.** Both models show weak predictive power: " +
					"classification 51% accuracy, regression R² = -0.037. Always consult financial professionals."},
			{"Project Purpose",
				"TradeCare helps beginner traders understand the challenges of short-term cryptocurrency prediction. " +
					"Rather than providing trading signals it demonstrates a complete CRISP-DM workflow, a proper ML pipeline " +
					"and an honest assessment of model limitations."},
			{"BR1: Price Movement Prediction",
				"Predict the 4-hour Bitcoin price change (%) with linear regression over 14 technical indicators. " +
					"RMSE 0.98% and MAE 0.66% are acceptable errors, but R² -0.037 means no predictive power."},
			{"BR2: Trade Profitability Assessment",
				"Predict whether a trade will be profitable with logistic regression over the same 14 features. " +
					"Accuracy 51.04% and ROC-AUC 0.5375: marginal improvement over a coin flip."},
			{"Key Findings",
				"Short-term Bitcoin prediction is extremely difficult. This aligns with the efficient market hypothesis: " +
					"short-term prices in liquid markets are difficult to predict. Negative results are valid scientific findings."},
		},
		Metrics: []Metric{
			{"Source", "Bitcoin OHLCV", "Hourly candlestick data"},
			{"Timeframe", "2020-2025", "5 years, gap-free"},
			{"Samples", "~48,000", "After filtering & cleaning"},
			{"Features", "14", "Technical indicators"},
		},
		Tables: []Table{{
			Title:   "Features Engineered",
			Columns: []string{"Group", "Features"},
			Rows: [][]string{
				{"Price Momentum", "return_1h, return_4h, return_12h, return_24h"},
				{"Trend Indicators", "rsi, ma_10, ma_20, ma_50, dist_from_ma10, dist_from_ma20"},
				{"Volume & Volatility", "volume_change, volume_ratio, volatility_24h, price_range"},
			},
		}},
	}
}

func studyPage() Page {
	return Page{
		Slug:  SlugStudy,
		Title: "Data Study",
		Icon:  "📈",
		Sections: []Section{
			{"Correlation Study Overview",
				"Each engineered feature was correlated with the profitability target to find which indicators carry signal."},
			{"Key Insights",
				"Momentum features show the strongest positive correlation. Correlations below 0.4 are considered weak in finance; " +
					"absolute moving average values are not predictive."},
			{"Data Quality Note",
				"The raw feed passes the validation gate before any analysis: exact schema, safe strings, sane prices, " +
					"minimum row count and a known start date."},
		},
		Metrics: []Metric{
			{"Momentum Avg Correlation", "+0.27", "return_1h .. return_24h"},
			{"Trend Avg Correlation", "+0.06", "rsi, moving averages, distances"},
			{"Volume/Volatility Avg Correlation", "+0.01", "volume and range features"},
		},
		Tables: []Table{{
			Title:   "Feature Correlation with Profitability",
			Columns: []string{"Feature", "Correlation", "Interpretation"},
			Rows: [][]string{
				{"return_4h", "0.32", "Recent upward momentum → more likely profitable"},
				{"return_12h", "0.28", "Medium-term trend continuation"},
				{"return_1h", "0.25", "Short-term momentum signal"},
				{"return_24h", "0.22", "Daily trend alignment"},
				{"dist_from_ma10", "0.18", "Price above short-term MA → bullish"},
				{"dist_from_ma20", "0.16", "Price above medium-term MA → trend strength"},
				{"volume_ratio", "0.08", "Volume surge → conviction"},
				{"rsi", "-0.02", "Neutral (RSI at extremes may reverse)"},
				{"volatility_24h", "-0.05", "High volatility → unpredictable"},
				{"volume_change", "0.03", "Volume changes weakly predictive"},
				{"price_range", "-0.04", "Intrabar volatility low signal"},
				{"ma_10", "0.01", "Absolute MA values not predictive"},
				{"ma_20", "0.02", "Absolute MA values not predictive"},
				{"ma_50", "0.01", "Absolute MA values not predictive"},
			},
		}},
	}
}

func predictorPage() Page {
	return Page{
		Slug:  SlugPredictor,
		Title: "Price & Trade Predictor",
		Icon:  "🎯",
		Sections: []Section{
			{"Critical Limitations",
				"Regression R² = -0.037 (NO predictive power). Classification accuracy = 51% (near coin flip). " +
					"This tool is for EDUCATIONAL demonstration only and must NEVER be used for trading decisions."},
			{"How to Use This Tool",
				"Enter current Bitcoin market conditions, request predictions, then review BR1 (expected 4h price change) " +
					"and BR2 (probability of a profitable trade). Submit the form to POST /api/predict."},
		},
		Metrics: []Metric{
			{"R² Score", "-0.037", "BR1 regression"},
			{"RMSE", "0.98%", "BR1 regression"},
			{"Accuracy", "51.04%", "BR2 classification"},
			{"ROC-AUC", "0.5375", "BR2 classification"},
		},
		Tables: []Table{{
			Title:   "Input Ranges",
			Columns: []string{"Field", "Min", "Max", "Default"},
			Rows: [][]string{
				{"return_1h (%)", "-10", "10", "0"},
				{"return_4h (%)", "-20", "20", "0"},
				{"return_12h (%)", "-30", "30", "0"},
				{"return_24h (%)", "-40", "40", "0"},
				{"rsi", "0", "100", "50"},
				{"current_price ($)", "1000", "150000", "50000"},
				{"ma_10 ($)", "1000", "150000", "49500"},
				{"ma_20 ($)", "1000", "150000", "49000"},
				{"ma_50 ($)", "1000", "150000", "48000"},
				{"volume_change (%)", "-100", "200", "0"},
				{"volume_ratio", "0.1", "5", "1"},
				{"volatility_24h", "0", "0.1", "0.02"},
				{"price_range", "0", "0.1", "0.02"},
			},
		}},
	}
}

func hypothesisPage() Page {
	return Page{
		Slug:  SlugHypothesis,
		Title: "Hypothesis Validation",
		Icon:  "🔬",
		Sections: []Section{
			{"H1: Technical Indicators Predict Short-Term Price Movement",
				"Expected R² > 0.3. Actual R² = -0.037 with RMSE 0.98% and MAE 0.66%. Not validated."},
			{"H2: Technical Indicators Predict Trade Profitability Direction",
				"Expected accuracy > 60%. Actual accuracy 51.04%, ROC-AUC 0.5375. Not validated."},
			{"H3: Recent Data (2020-2025) Provides Better Training Signal",
				"Data quality improved (gap-free, validated feed) but model performance did not. Partially validated."},
		},
		Tables: []Table{{
			Title:   "Overall Hypothesis Summary",
			Columns: []string{"Hypothesis", "Expected", "Actual", "Status", "Implication"},
			Rows: [][]string{
				{"H1: Price Predictability", "R² > 0.3", "R² = -0.037", "NOT VALIDATED", "Exact returns unpredictable"},
				{"H2: Profitability Prediction", "Accuracy > 60%", "Accuracy = 51%", "NOT VALIDATED", "Direction also unpredictable"},
				{"H3: Recent Data Quality", "Improved performance", "Quality ✓, Performance ✗", "PARTIAL", "Quality alone insufficient"},
			},
		}},
	}
}

func technicalPage() Page {
	return Page{
		Slug:  SlugTechnical,
		Title: "Technical Overview",
		Icon:  "⚙️",
		Sections: []Section{
			{"ML Pipeline (CRISP-DM)",
				"Data understanding, data preparation (validated raw feed, cleaning, 14 features) then modeling and evaluation " +
					"on a time-ordered split."},
			{"BR1: Regression Model",
				"Linear regression on standard-scaled features predicting the 4-hour return. Training and test scores are similar: " +
					"no overfitting, just a weak model."},
			{"BR2: Classification Model",
				"Logistic regression on the same scaled features predicting profitable (1) vs not (0). " +
					"Near-equal errors in all confusion matrix quadrants: a random guessing pattern."},
			{"Known Limitations",
				"Markets are more complex than 14 technical indicators and short-term prediction is extremely difficult."},
		},
		Metrics: []Metric{
			{"R² Score", "-0.037", ""},
			{"RMSE", "0.98%", ""},
			{"MAE", "0.66%", ""},
			{"Accuracy", "51.04%", ""},
			{"ROC-AUC", "0.5375", ""},
		},
		Tables: []Table{{
			Title:   "Confusion Matrix (Test Set)",
			Columns: []string{"Actual \\ Predicted", "Not Profitable", "Profitable"},
			Rows: [][]string{
				{"Not Profitable", "4800", "4700"},
				{"Profitable", "4900", "4800"},
			},
		}},
	}
}
