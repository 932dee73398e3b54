package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Template kinds.
const (
	TemplateKindWindow    = "WINDOW"
	TemplateKindDoor      = "DOOR"
	TemplateKindFortochka = "FORTOCHKA"
)

// Section descriptive tags.
const (
	SectionKindTop    = "TOP"
	SectionKindMiddle = "MIDDLE"
	SectionKindBottom = "BOTTOM"
	SectionKindWhole  = "WHOLE"
)

// Section orientations.
const (
	OrientationVertical   = "VERTICAL"
	OrientationHorizontal = "HORIZONTAL"
)

// Template is an administratively defined blueprint for a window, door or
// fortochka product: base size, base price per m² and section layout.
type Template struct {
	BaseModel
	Name           *string           `gorm:"uniqueIndex:idx_templates_name_kind" json:"name"`
	Kind           string            `gorm:"uniqueIndex:idx_templates_name_kind" json:"kind"`
	BaseWidthMM    int               `json:"base_width_mm"`
	BaseHeightMM   int               `json:"base_height_mm"`
	BasePricePerM2 decimal.Decimal   `gorm:"type:numeric(10,2)" json:"base_price_per_m2"`
	Sections       []TemplateSection `gorm:"constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

// TemplateSection is one proportional sub-rectangle of a template. Ratios are
// fractions of the order's overall dimension on the axis the orientation
// scales; a nil ratio means that axis is never scaled for this section.
type TemplateSection struct {
	BaseModel
	TemplateID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_template_sections_order" json:"template_id"`
	SectionKind  string    `json:"section_kind"`
	HasGlass     bool      `json:"has_glass"`
	SectionOrder int       `gorm:"uniqueIndex:idx_template_sections_order" json:"section_order"`
	Orientation  string    `json:"orientation"`
	WidthRatio   *float64  `json:"width_ratio"`
	HeightRatio  *float64  `json:"height_ratio"`
}
