package service

import (
	"math"
	"strings"
)

// ModelPrice is the USD price per one million tokens.
type ModelPrice struct {
	Input  float64
	Output float64
}

// PriceTable resolves model names to prices by longest matching prefix.
type PriceTable map[string]ModelPrice

// DefaultPriceTable lists the models the assistant features call.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		"gpt-4o":                 {Input: 2.50, Output: 10.00},
		"gpt-4o-mini":            {Input: 0.15, Output: 0.60},
		"gpt-4-turbo":            {Input: 10.00, Output: 30.00},
		"gpt-3.5-turbo":          {Input: 0.50, Output: 1.50},
		"text-embedding-3-small": {Input: 0.02},
		"text-embedding-3-large": {Input: 0.13},
		"claude-3-haiku":         {Input: 0.25, Output: 1.25},
		"claude-3-5-sonnet":      {Input: 3.00, Output: 15.00},
	}
}

// Lookup returns the price for model, matching dated variants such as
// "gpt-4o-2024-08-06" to their base entry.
func (t PriceTable) Lookup(model string) (ModelPrice, bool) {
	model = strings.ToLower(strings.TrimSpace(model))
	if model == "" {
		return ModelPrice{}, false
	}
	if price, ok := t[model]; ok {
		return price, true
	}
	best := ""
	for prefix := range t {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return ModelPrice{}, false
	}
	return t[best], true
}

// Cost computes the USD cost of a call. Unknown models cost nothing.
func (t PriceTable) Cost(model string, promptTokens, completionTokens int) float64 {
	price, ok := t.Lookup(model)
	if !ok {
		return 0
	}
	cost := (float64(promptTokens)*price.Input + float64(completionTokens)*price.Output) / 1_000_000
	return math.Round(cost*1e8) / 1e8
}
