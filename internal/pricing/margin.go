package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MarginRule is a company's profit configuration for a material class.
type MarginRule struct {
	IsPercentage bool
	IsPerArea    bool
	Profit       decimal.Decimal
}

// ProfitAmount computes the master's markup on top of a base cost.
//
// The percentage rule takes Profit percent of the base cost. The per-area
// rule takes Profit per m² of the order's overall rectangle — deliberately
// the overall area, not the summed section areas the base cost came from, so
// the two can diverge when floored sections don't tile the rectangle exactly.
// A nil rule, or one with neither flag set, yields zero profit.
func ProfitAmount(baseCost decimal.Decimal, widthMM, heightMM int, rule *MarginRule) decimal.Decimal {
	if rule == nil {
		return decimal.Zero
	}
	switch {
	case rule.IsPercentage:
		return baseCost.Mul(rule.Profit).Div(hundred)
	case rule.IsPerArea:
		return AreaM2(widthMM, heightMM).Mul(rule.Profit)
	}
	return decimal.Zero
}
