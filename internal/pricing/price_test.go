package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAreaM2(t *testing.T) {
	cases := []struct {
		name     string
		widthMM  int
		heightMM int
		want     string
	}{
		{"typical window", 1200, 1800, "2.16"},
		{"one square meter", 1000, 1000, "1"},
		{"sub millimeter precision kept", 333, 333, "0.110889"},
		{"small section", 100, 250, "0.025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AreaM2(tc.widthMM, tc.heightMM)
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("area want %s got %s", want, got)
			}
		})
	}
}

func TestOrderTotalWithSingleWholeSection(t *testing.T) {
	// Template 1000x1500 @ 200/m², order 1200x1800 resolved to one whole
	// vertical section keeps the full rectangle: 2.16 m² * 200 = 432.00.
	sections := []SectionSize{{SectionOrder: 0, WidthMM: 1200, HeightMM: 1800}}
	base := decimal.NewFromInt(200)

	got := OrderTotal(1200, 1800, sections, base)
	if !got.Equal(decimal.RequireFromString("432")) {
		t.Fatalf("total want 432 got %s", got)
	}
}

func TestOrderTotalSumsSectionAreas(t *testing.T) {
	sections := []SectionSize{
		{SectionOrder: 0, WidthMM: 400, HeightMM: 2000},
		{SectionOrder: 1, WidthMM: 600, HeightMM: 2000},
	}
	base := decimal.RequireFromString("150.50")

	// 0.8 + 1.2 = 2 m² exactly, no float drift allowed.
	got := OrderTotal(1000, 2000, sections, base)
	if !got.Equal(decimal.RequireFromString("301")) {
		t.Fatalf("total want 301 got %s", got)
	}
}

func TestOrderTotalWithoutSectionsUsesWholeArea(t *testing.T) {
	base := decimal.NewFromInt(200)

	got := OrderTotal(1200, 1800, nil, base)
	if !got.Equal(decimal.RequireFromString("432")) {
		t.Fatalf("total want 432 got %s", got)
	}
}

func TestProfitPercentageRule(t *testing.T) {
	rule := &MarginRule{IsPercentage: true, Profit: decimal.NewFromInt(50)}
	baseCost := decimal.RequireFromString("432.00")

	got := ProfitAmount(baseCost, 1200, 1800, rule)
	if !got.Equal(decimal.RequireFromString("216")) {
		t.Fatalf("profit want 216 got %s", got)
	}
}

func TestProfitPerAreaRule(t *testing.T) {
	rule := &MarginRule{IsPerArea: true, Profit: decimal.NewFromInt(50)}

	// 1.2m x 1.8m = 2.16 m² -> 108.00, regardless of the base cost.
	got := ProfitAmount(decimal.RequireFromString("9999.99"), 1200, 1800, rule)
	if !got.Equal(decimal.RequireFromString("108")) {
		t.Fatalf("profit want 108 got %s", got)
	}
}

func TestProfitPerAreaUsesOverallAreaNotSectionSum(t *testing.T) {
	// Sections floored by resolution don't tile the rectangle: base cost
	// comes from 999+999 mm wide sections while the margin uses the full
	// 2000 mm width. The divergence is intentional and must stay.
	sections := []SectionSize{
		{SectionOrder: 0, WidthMM: 999, HeightMM: 1000},
		{SectionOrder: 1, WidthMM: 999, HeightMM: 1000},
	}
	base := decimal.NewFromInt(100)
	rule := &MarginRule{IsPerArea: true, Profit: decimal.NewFromInt(100)}

	baseCost := OrderTotal(2000, 1000, sections, base)
	if !baseCost.Equal(decimal.RequireFromString("199.8")) {
		t.Fatalf("base cost want 199.8 got %s", baseCost)
	}

	profit := ProfitAmount(baseCost, 2000, 1000, rule)
	if !profit.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("profit want 200 (overall area) got %s", profit)
	}
}

func TestProfitNoRule(t *testing.T) {
	baseCost := decimal.RequireFromString("432.00")

	if got := ProfitAmount(baseCost, 1200, 1800, nil); !got.IsZero() {
		t.Fatalf("nil rule profit want 0 got %s", got)
	}
	if got := ProfitAmount(baseCost, 1200, 1800, &MarginRule{Profit: decimal.NewFromInt(50)}); !got.IsZero() {
		t.Fatalf("flagless rule profit want 0 got %s", got)
	}
}

func TestProfitPercentageWinsWhenBothFlagsSet(t *testing.T) {
	rule := &MarginRule{IsPercentage: true, IsPerArea: true, Profit: decimal.NewFromInt(10)}
	baseCost := decimal.NewFromInt(100)

	got := ProfitAmount(baseCost, 1200, 1800, rule)
	if !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("profit want 10 got %s", got)
	}
}
