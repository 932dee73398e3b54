// Package pricing derives concrete section layouts and prices for window and
// door orders from parametric templates. Everything here is pure computation;
// persistence stays with the caller.
package pricing

import (
	"fmt"
	"sort"
)

// Section orientations.
const (
	Vertical   = "VERTICAL"
	Horizontal = "HORIZONTAL"
)

// SectionSpec is a template section as the resolver sees it: an ordering key,
// an orientation and the proportional ratios. A nil ratio on the axis the
// orientation scales is a template configuration error.
type SectionSpec struct {
	SectionOrder int
	Orientation  string
	WidthRatio   *float64
	HeightRatio  *float64
}

// Override carries the caller's explicit dimensions for one section. A nil
// field leaves that axis to the default rule.
type Override struct {
	SectionOrder int
	WidthMM      *int
	HeightMM     *int
}

// SectionSize is a resolved section: concrete millimeter dimensions keyed by
// the template's section order.
type SectionSize struct {
	SectionOrder int
	WidthMM      int
	HeightMM     int
}

// ResolveSections turns a template's section specs plus an order's overall
// size into concrete dimensions for every section, in section-order order.
//
// A vertical section scales its width by the width ratio and spans the full
// order height; a horizontal section scales its height by the height ratio
// and spans the full order width. The orthogonal axis is never scaled: a
// vertical split only subdivides along the width. Caller overrides win per
// axis; an omitted axis falls back to the same defaulting rule.
func ResolveSections(widthMM, heightMM int, specs []SectionSpec, overrides []Override) ([]SectionSize, error) {
	if widthMM <= 0 {
		return nil, &ValidationError{Field: "width_mm", Reason: "must be a positive integer"}
	}
	if heightMM <= 0 {
		return nil, &ValidationError{Field: "height_mm", Reason: "must be a positive integer"}
	}

	ordered := make([]SectionSpec, len(specs))
	copy(ordered, specs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SectionOrder < ordered[j].SectionOrder
	})

	known := make(map[int]struct{}, len(ordered))
	for _, s := range ordered {
		known[s.SectionOrder] = struct{}{}
	}

	byOrder := make(map[int]Override, len(overrides))
	for _, ov := range overrides {
		if _, ok := known[ov.SectionOrder]; !ok {
			return nil, &ValidationError{
				Field:  "sections",
				Reason: fmt.Sprintf("section_order %d not defined by template", ov.SectionOrder),
			}
		}
		if _, dup := byOrder[ov.SectionOrder]; dup {
			return nil, &ValidationError{
				Field:  "sections",
				Reason: fmt.Sprintf("duplicate entry for section_order %d", ov.SectionOrder),
			}
		}
		if ov.WidthMM != nil && *ov.WidthMM <= 0 {
			return nil, &ValidationError{Field: "sections.width_mm", Reason: "must be a positive integer"}
		}
		if ov.HeightMM != nil && *ov.HeightMM <= 0 {
			return nil, &ValidationError{Field: "sections.height_mm", Reason: "must be a positive integer"}
		}
		byOrder[ov.SectionOrder] = ov
	}

	resolved := make([]SectionSize, 0, len(ordered))
	for _, spec := range ordered {
		ov := byOrder[spec.SectionOrder]

		size := SectionSize{SectionOrder: spec.SectionOrder}
		var err error
		if spec.Orientation == Vertical {
			size.WidthMM, err = pickScaled(ov.WidthMM, widthMM, spec.WidthRatio, spec.SectionOrder, "width")
			if err != nil {
				return nil, err
			}
			size.HeightMM = pickWhole(ov.HeightMM, heightMM)
		} else {
			size.WidthMM = pickWhole(ov.WidthMM, widthMM)
			size.HeightMM, err = pickScaled(ov.HeightMM, heightMM, spec.HeightRatio, spec.SectionOrder, "height")
			if err != nil {
				return nil, err
			}
		}
		resolved = append(resolved, size)
	}
	return resolved, nil
}

// pickScaled applies the override if present, otherwise floors the overall
// dimension scaled by the ratio.
func pickScaled(override *int, overall int, ratio *float64, order int, axis string) (int, error) {
	if override != nil {
		return *override, nil
	}
	if ratio == nil {
		return 0, &ConfigError{SectionOrder: order, Axis: axis}
	}
	return int(float64(overall) * *ratio), nil
}

// pickWhole applies the override if present, otherwise inherits the full
// order dimension on the unscaled axis.
func pickWhole(override *int, overall int) int {
	if override != nil {
		return *override
	}
	return overall
}
