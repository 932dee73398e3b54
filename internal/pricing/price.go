package pricing

import "github.com/shopspring/decimal"

// AreaM2 converts millimeter dimensions to square meters. Computed in decimal
// so many sections can be summed into a currency total without float drift.
func AreaM2(widthMM, heightMM int) decimal.Decimal {
	return decimal.New(int64(widthMM), -3).Mul(decimal.New(int64(heightMM), -3))
}

// OrderTotal prices an order against its template's base price per m². With
// resolved sections the total is the sum of per-section areas times the base
// price; a template without sections prices the whole rectangle directly.
func OrderTotal(widthMM, heightMM int, sections []SectionSize, basePricePerM2 decimal.Decimal) decimal.Decimal {
	if len(sections) == 0 {
		return AreaM2(widthMM, heightMM).Mul(basePricePerM2)
	}
	total := decimal.Zero
	for _, s := range sections {
		total = total.Add(AreaM2(s.WidthMM, s.HeightMM).Mul(basePricePerM2))
	}
	return total
}
