package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product classifications a margin configuration can be attached to.
const (
	MaterialClassAlumin = "ALUMIN"
	MaterialClassPlast  = "PLAST"
	MaterialClassThermo = "THERMO"
)

// Region is a top-level administrative area.
type Region struct {
	BaseModel
	Name string `json:"name"`
}

// District belongs to a region.
type District struct {
	BaseModel
	RegionID uuid.UUID `gorm:"type:uuid;index" json:"region_id"`
	Region   *Region   `json:"region,omitempty"`
	Name     string    `json:"name"`
}

// Dealer is a sales partner companies are attached to.
type Dealer struct {
	BaseModel
	Name string `json:"name"`
}

// Company is a dealer's workshop. MasterID links the company to the account
// that manages it; order details created by that account bill through this
// company's margin configurations.
type Company struct {
	BaseModel
	MasterID       *uuid.UUID      `gorm:"type:uuid;index" json:"master_id"`
	RegionID       uuid.UUID       `gorm:"type:uuid" json:"region_id"`
	Region         *Region         `json:"region,omitempty"`
	DistrictID     uuid.UUID       `gorm:"type:uuid" json:"district_id"`
	District       *District       `json:"district,omitempty"`
	DealerID       uuid.UUID       `gorm:"type:uuid" json:"dealer_id"`
	Dealer         *Dealer         `json:"dealer,omitempty"`
	FreeDelivery   bool            `json:"free_delivery"`
	TelegramLink   string          `json:"telegram_link"`
	ProductConfigs []ProductConfig `gorm:"constraint:OnDelete:CASCADE" json:"product_configs,omitempty"`
}

// ProductConfig is a company's margin rule for one material class: either a
// percentage of the base cost or a rate per square meter of the order.
// Exactly one of the two flags is meant to be set.
type ProductConfig struct {
	BaseModel
	CompanyID    uuid.UUID       `gorm:"type:uuid;index;uniqueIndex:idx_product_configs_company_class" json:"company_id"`
	ProductType  string          `gorm:"uniqueIndex:idx_product_configs_company_class" json:"product_type"`
	IsPercentage bool            `json:"is_percentage"`
	IsPerArea    bool            `json:"is_per_area"`
	Profit       decimal.Decimal `gorm:"type:numeric(6,2)" json:"profit"`
	Currency     string          `gorm:"size:3" json:"currency"`
}

// Provider is a material supplier referenced by order details.
type Provider struct {
	BaseModel
	Name string `gorm:"index" json:"name"`
}
