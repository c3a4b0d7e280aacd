// Package chat drives a conversation: it prices usage, resolves file
// references, sends exchanges through a provider, and runs the
// interactive loop.
package chat

// ModelPricing holds per-million-token rates in USD.
type ModelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// pricing is keyed by model display name. Unknown models fall back to
// Sonnet rates rather than pricing a conversation at zero.
var pricing = map[string]ModelPricing{
	"Opus":   {InputPerMillion: 15.00, OutputPerMillion: 75.00},
	"Sonnet": {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"Haiku":  {InputPerMillion: 0.80, OutputPerMillion: 4.00},
}

var fallbackPricing = ModelPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}

// PricingFor returns the rates for a model display name.
func PricingFor(model string) ModelPricing {
	if p, ok := pricing[model]; ok {
		return p
	}
	return fallbackPricing
}

// Cost computes the USD cost of a single exchange.
func Cost(model string, inputTokens, outputTokens int) float64 {
	p := PricingFor(model)
	return float64(inputTokens)*p.InputPerMillion/1_000_000 +
		float64(outputTokens)*p.OutputPerMillion/1_000_000
}
