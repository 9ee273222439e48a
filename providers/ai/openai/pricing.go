package openai

import (
	"regexp"

	"github.com/leofalp/sitebrief/core/cost"
	"github.com/leofalp/sitebrief/providers/ai"
)

// Model name constants for OpenAI chat models.
// Use these constants instead of raw strings for type safety and autocompletion.
const (
	ModelGPT4o     = "gpt-4o"
	ModelGPT4oMini = "gpt-4o-mini"

	ModelGPT41     = "gpt-4.1"
	ModelGPT41Mini = "gpt-4.1-mini"
	ModelGPT41Nano = "gpt-4.1-nano"

	// Legacy models
	ModelGPT4Turbo  = "gpt-4-turbo"
	ModelGPT35Turbo = "gpt-3.5-turbo"
)

// ModelPricing contains pricing information for the supported OpenAI chat
// models. Prices are in USD per million tokens.
// Source: https://platform.openai.com/docs/pricing
var ModelPricing = map[string]cost.ModelCost{
	ModelGPT4o: {
		InputCostPerMillion:  2.50,
		OutputCostPerMillion: 10.00,
	},
	ModelGPT4oMini: {
		InputCostPerMillion:  0.15,
		OutputCostPerMillion: 0.60,
	},
	ModelGPT41: {
		InputCostPerMillion:  2.00,
		OutputCostPerMillion: 8.00,
	},
	ModelGPT41Mini: {
		InputCostPerMillion:  0.40,
		OutputCostPerMillion: 1.60,
	},
	ModelGPT41Nano: {
		InputCostPerMillion:  0.10,
		OutputCostPerMillion: 0.40,
	},
	ModelGPT4Turbo: {
		InputCostPerMillion:  10.00,
		OutputCostPerMillion: 30.00,
	},
	ModelGPT35Turbo: {
		InputCostPerMillion:  0.50,
		OutputCostPerMillion: 1.50,
	},
}

// Snapshot names carry a date suffix ("gpt-4o-mini-2024-07-18") or, for
// older models, a four-digit one ("gpt-3.5-turbo-0125").
var snapshotSuffix = regexp.MustCompile(`-(\d{4}-\d{2}-\d{2}|\d{4})$`)

// GetModelCost returns the cost configuration for a given model name.
// Snapshot names are normalized to their base model. Unknown models fall
// back to gpt-4o-mini pricing, so estimates for models served through a
// custom base URL are approximate at best.
func GetModelCost(model string) cost.ModelCost {
	if mc, ok := ModelPricing[model]; ok {
		return mc
	}

	if mc, ok := ModelPricing[normalizeModelName(model)]; ok {
		return mc
	}

	return ModelPricing[ModelGPT4oMini]
}

// normalizeModelName strips the snapshot suffix from a model name.
// Examples:
//   - "gpt-4o-mini-2024-07-18" -> "gpt-4o-mini"
//   - "gpt-3.5-turbo-0125" -> "gpt-3.5-turbo"
func normalizeModelName(model string) string {
	return snapshotSuffix.ReplaceAllString(model, "")
}

// CalculateCost estimates the total cost in USD for a given model and usage.
func CalculateCost(model string, usage *ai.Usage) float64 {
	if usage == nil {
		return 0
	}

	mc := GetModelCost(model)
	return mc.CalculateTotalCost(usage.PromptTokens, usage.CompletionTokens)
}
