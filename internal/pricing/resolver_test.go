package pricing

import (
	"errors"
	"reflect"
	"testing"
)

func ratio(v float64) *float64 { return &v }
func mm(v int) *int            { return &v }

func TestResolveWholeVerticalSection(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: ratio(1.0)},
	}

	got, err := ResolveSections(1200, 1800, specs, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	want := []SectionSize{{SectionOrder: 0, WidthMM: 1200, HeightMM: 1800}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("resolved want %v got %v", want, got)
	}
}

func TestResolveTwoVerticalSectionsSplitWidth(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: ratio(0.4)},
		{SectionOrder: 1, Orientation: Vertical, WidthRatio: ratio(0.6)},
	}

	got, err := ResolveSections(1000, 2000, specs, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if got[0].WidthMM != 400 || got[1].WidthMM != 600 {
		t.Fatalf("widths want 400/600 got %d/%d", got[0].WidthMM, got[1].WidthMM)
	}
	for _, s := range got {
		if s.HeightMM != 2000 {
			t.Fatalf("vertical section %d height want 2000 got %d", s.SectionOrder, s.HeightMM)
		}
	}
}

func TestResolveHorizontalSectionInheritsFullWidth(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Horizontal, HeightRatio: ratio(0.25)},
		{SectionOrder: 1, Orientation: Horizontal, HeightRatio: ratio(0.75)},
	}

	got, err := ResolveSections(900, 2101, specs, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for _, s := range got {
		if s.WidthMM != 900 {
			t.Fatalf("horizontal section %d width want 900 got %d", s.SectionOrder, s.WidthMM)
		}
	}
	// 2101*0.25 = 525.25 and 2101*0.75 = 1575.75 must floor, not round.
	if got[0].HeightMM != 525 {
		t.Fatalf("height want 525 got %d", got[0].HeightMM)
	}
	if got[1].HeightMM != 1575 {
		t.Fatalf("height want 1575 got %d", got[1].HeightMM)
	}
}

func TestResolveOverridesWinPerAxis(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: ratio(0.5)},
	}
	overrides := []Override{
		{SectionOrder: 0, WidthMM: mm(777)},
	}

	got, err := ResolveSections(1000, 2000, specs, overrides)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if got[0].WidthMM != 777 {
		t.Fatalf("override width want 777 got %d", got[0].WidthMM)
	}
	if got[0].HeightMM != 2000 {
		t.Fatalf("omitted axis want full height 2000 got %d", got[0].HeightMM)
	}
}

func TestResolveOverrideOmittedAxisFallsBackToRatio(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 3, Orientation: Horizontal, HeightRatio: ratio(0.25)},
	}
	overrides := []Override{
		{SectionOrder: 3, WidthMM: mm(500)},
	}

	got, err := ResolveSections(1000, 2000, specs, overrides)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if got[0].WidthMM != 500 {
		t.Fatalf("width want 500 got %d", got[0].WidthMM)
	}
	if got[0].HeightMM != 500 {
		t.Fatalf("height want 2000*0.25=500 got %d", got[0].HeightMM)
	}
}

func TestResolveEmitsTemplateOrder(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 2, Orientation: Vertical, WidthRatio: ratio(0.2)},
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: ratio(0.5)},
		{SectionOrder: 1, Orientation: Vertical, WidthRatio: ratio(0.3)},
	}

	got, err := ResolveSections(1000, 1000, specs, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for i, s := range got {
		if s.SectionOrder != i {
			t.Fatalf("position %d want section_order %d got %d", i, i, s.SectionOrder)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: ratio(0.33)},
		{SectionOrder: 1, Orientation: Horizontal, HeightRatio: ratio(0.5)},
	}
	overrides := []Override{{SectionOrder: 1, HeightMM: mm(450)}}

	first, err := ResolveSections(1234, 2345, specs, overrides)
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	second, err := ResolveSections(1234, 2345, specs, overrides)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolutions differ: %v vs %v", first, second)
	}
}

func TestResolveNilRatioOnScaledAxisFails(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: nil},
	}

	_, err := ResolveSections(1000, 2000, specs, nil)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("want ConfigError got %v", err)
	}
	if configErr.SectionOrder != 0 || configErr.Axis != "width" {
		t.Fatalf("unexpected config error detail: %+v", configErr)
	}
}

func TestResolveNilRatioCoveredByOverridePasses(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: nil},
	}
	overrides := []Override{{SectionOrder: 0, WidthMM: mm(600)}}

	got, err := ResolveSections(1000, 2000, specs, overrides)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got[0].WidthMM != 600 {
		t.Fatalf("width want 600 got %d", got[0].WidthMM)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	specs := []SectionSpec{
		{SectionOrder: 0, Orientation: Vertical, WidthRatio: ratio(0.5)},
	}

	cases := []struct {
		name      string
		widthMM   int
		heightMM  int
		overrides []Override
	}{
		{"zero width", 0, 2000, nil},
		{"negative height", 1000, -5, nil},
		{"unknown section_order", 1000, 2000, []Override{{SectionOrder: 9}}},
		{"duplicate override", 1000, 2000, []Override{
			{SectionOrder: 0, WidthMM: mm(100)},
			{SectionOrder: 0, WidthMM: mm(200)},
		}},
		{"negative override width", 1000, 2000, []Override{{SectionOrder: 0, WidthMM: mm(-10)}}},
		{"zero override height", 1000, 2000, []Override{{SectionOrder: 0, HeightMM: mm(0)}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveSections(tc.widthMM, tc.heightMM, specs, tc.overrides)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("want ValidationError got %v", err)
			}
		})
	}
}

func TestResolveNoSections(t *testing.T) {
	got, err := ResolveSections(1000, 2000, nil, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty resolution got %v", got)
	}
}
