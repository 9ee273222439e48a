package cost

import (
	"fmt"
)

// ModelCost represents the pricing structure for a language model.
// Costs are expressed in USD per million tokens.
//
// Example usage:
//
//	modelCost := cost.ModelCost{
//	    InputCostPerMillion:  0.15,
//	    OutputCostPerMillion: 0.60,
//	}
type ModelCost struct {
	// InputCostPerMillion is the cost in USD per 1 million prompt tokens
	InputCostPerMillion float64 `json:"input_cost_per_million"`

	// OutputCostPerMillion is the cost in USD per 1 million completion tokens
	OutputCostPerMillion float64 `json:"output_cost_per_million"`
}

// CalculateInputCost calculates the cost for the given number of prompt tokens.
func (mc ModelCost) CalculateInputCost(tokens int) float64 {
	return (float64(tokens) / 1_000_000.0) * mc.InputCostPerMillion
}

// CalculateOutputCost calculates the cost for the given number of completion tokens.
func (mc ModelCost) CalculateOutputCost(tokens int) float64 {
	return (float64(tokens) / 1_000_000.0) * mc.OutputCostPerMillion
}

// CalculateTotalCost calculates the combined cost of a request.
func (mc ModelCost) CalculateTotalCost(promptTokens, completionTokens int) float64 {
	return mc.CalculateInputCost(promptTokens) + mc.CalculateOutputCost(completionTokens)
}

// String returns a formatted string representation of the model costs.
func (mc ModelCost) String() string {
	return fmt.Sprintf("Input: $%.6f/M, Output: $%.6f/M",
		mc.InputCostPerMillion, mc.OutputCostPerMillion)
}
