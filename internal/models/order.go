package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary order statuses.
const (
	OrderStatusWaiting   = "WAITING"
	OrderStatusInProcess = "IN_PROCESS"
	OrderStatusClosed    = "CLOSED"
	OrderStatusInDebt    = "IN_DEBT"
)

// ProductOrder is a customer's dimensioned order against a template. Window,
// door and fortochka orders share this one entity, tagged by Kind. TotalPrice
// is always derived by the order service, never accepted from the caller.
type ProductOrder struct {
	BaseModel
	Kind       string          `gorm:"index" json:"kind"`
	TemplateID uuid.UUID       `gorm:"type:uuid;index" json:"template_id"`
	Template   *Template       `json:"template,omitempty"`
	WidthMM    int             `json:"width_mm"`
	HeightMM   int             `json:"height_mm"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"`
	Sections   []OrderSection  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

// AreaM2 returns the order's overall area in square meters.
func (o *ProductOrder) AreaM2() decimal.Decimal {
	return decimal.New(int64(o.WidthMM), -3).Mul(decimal.New(int64(o.HeightMM), -3))
}

// OrderSection is one resolved section of a product order. The template
// section reference is metadata only and goes NULL if the template section is
// later removed. AreaM2 is recomputed from the stored millimeter dimensions
// on every read, never stored as independent truth.
type OrderSection struct {
	BaseModel
	OrderID           uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	TemplateSectionID *uuid.UUID      `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"template_section_id"`
	SectionOrder      int             `json:"section_order"`
	WidthMM           int             `json:"width_mm"`
	HeightMM          int             `json:"height_mm"`
	AreaM2            decimal.Decimal `gorm:"-" json:"area_m2"`
}

// ComputeAreaM2 returns the section area in square meters.
func (s *OrderSection) ComputeAreaM2() decimal.Decimal {
	return decimal.New(int64(s.WidthMM), -3).Mul(decimal.New(int64(s.HeightMM), -3))
}

// AfterFind keeps AreaM2 in sync with the stored dimensions.
func (s *OrderSection) AfterFind(tx *gorm.DB) error {
	s.AreaM2 = s.ComputeAreaM2()
	return nil
}

// NewOrder is the customer-facing order record carrying contact data and the
// money roll-up. CostPrice, Profit and TotalPrice are written together by the
// order service once the margin rule has been applied.
type NewOrder struct {
	BaseModel
	CompanyID      *uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
	OrderType      string           `json:"order_type"`
	OrderNumber    string           `gorm:"uniqueIndex" json:"order_number"`
	Quantity       int              `json:"quantity"`
	TotalPrice     decimal.Decimal  `gorm:"type:numeric(11,2)" json:"total_price"`
	CostPrice      decimal.Decimal  `gorm:"type:numeric(11,2)" json:"cost_price"`
	Profit         decimal.Decimal  `gorm:"type:numeric(11,2)" json:"profit"`
	DiscountPrice  *decimal.Decimal `gorm:"type:numeric(11,2)" json:"discount_price"`
	AdvancePayment decimal.Decimal  `gorm:"type:numeric(11,2)" json:"advance_payment"`
	OrderOwner     string           `json:"order_owner"`
	PhoneNumber    string           `json:"phone_number"`
	Location       string           `json:"location"`
	AdditionalInfo string           `json:"additional_info"`
}

// Metal thickness choices for order details.
const (
	MetalThickness10 = "1.0 mm"
	MetalThickness12 = "1.2 mm"
)

// OrderDetail binds a NewOrder to its dimensioned product order and the
// material configuration picked by the master.
type OrderDetail struct {
	BaseModel
	OrderID           uuid.UUID     `gorm:"type:uuid;index" json:"order_id"`
	Order             *NewOrder     `json:"order,omitempty"`
	ProductOrderID    uuid.UUID     `gorm:"type:uuid;index" json:"product_order_id"`
	ProductOrder      *ProductOrder `json:"product_order,omitempty"`
	MaterialClass     string        `json:"material_class"`
	MaterialTypeID    *uuid.UUID    `gorm:"type:uuid" json:"material_type_id"`
	GlassLayerID      *uuid.UUID    `gorm:"type:uuid" json:"glass_layer_id"`
	GlassTypeID       *uuid.UUID    `gorm:"type:uuid" json:"glass_type_id"`
	ProviderID        *uuid.UUID    `gorm:"type:uuid" json:"provider_id"`
	ProfilTypeID      *uuid.UUID    `gorm:"type:uuid" json:"profil_type_id"`
	SashProfilTypeID  *uuid.UUID    `gorm:"type:uuid" json:"sash_profil_type_id"`
	FrameProfilTypeID *uuid.UUID    `gorm:"type:uuid" json:"frame_profil_type_id"`
	DesignOptionID    *uuid.UUID    `gorm:"type:uuid" json:"design_option_id"`
	DesignVariantID   *uuid.UUID    `gorm:"type:uuid" json:"design_variant_id"`
	HandleTypeID      *uuid.UUID    `gorm:"type:uuid" json:"handle_type_id"`
	IncludeWaste      bool          `json:"include_waste_percentage"`
	WastePercentage   *float64      `json:"waste_percentage"`
	HasBalcony        bool          `json:"has_balcony"`
	HasMetal          bool          `json:"has_metal"`
	MetalThickness    string        `json:"metal_thickness"`
	ShelfWidth        float64       `json:"shelf_width"`
	HasHandle         bool          `json:"has_handle"`
}

// OrderSummary is the running ledger row created after every successful
// order-detail creation. The order service creates it with a direct call at
// the end of the creation flow so the ordering stays visible in one place.
type OrderSummary struct {
	BaseModel
	OrderDetailID  uuid.UUID       `gorm:"type:uuid;index" json:"order_detail_id"`
	SequenceNumber int             `json:"sequence_number"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(11,2)" json:"total_price"`
	Status         string          `gorm:"default:WAITING" json:"status"`
}
