package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialType is a base material (aluminium, plastic, thermo...).
type MaterialType struct {
	BaseModel
	Name string `json:"name"`
}

// ProfilType is a profile series of a material.
type ProfilType struct {
	BaseModel
	MaterialTypeID uuid.UUID     `gorm:"type:uuid;index" json:"material_type_id"`
	MaterialType   *MaterialType `json:"material_type,omitempty"`
	Name           string        `json:"name"`
}

// GlassLayer is a glazing layer count ("1", "2", ...).
type GlassLayer struct {
	BaseModel
	Layer string `json:"layer"`
}

// GlassType is a concrete glass offering within a layer.
type GlassType struct {
	BaseModel
	GlassLayerID uuid.UUID       `gorm:"type:uuid;index" json:"glass_layer_id"`
	GlassLayer   *GlassLayer     `json:"glass_layer,omitempty"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric(9,2)" json:"price"`
	Currency     string          `gorm:"size:3" json:"currency"`
}

// DesignOption groups design variants.
type DesignOption struct {
	BaseModel
	Name     string          `json:"name"`
	Variants []DesignVariant `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

// DesignVariant is one concrete design under an option.
type DesignVariant struct {
	BaseModel
	OptionID uuid.UUID `gorm:"type:uuid;index" json:"option_id"`
	Name     string    `json:"name"`
}

// SashProfilType names a sash profile choice.
type SashProfilType struct {
	BaseModel
	Name string `json:"name"`
}

// FrameProfilType names a frame profile choice.
type FrameProfilType struct {
	BaseModel
	Name string `json:"name"`
}

// HandleType names a handle choice.
type HandleType struct {
	BaseModel
	Name string `json:"name"`
}
