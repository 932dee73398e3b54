package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/models"
	"github.com/example/deraza/internal/pricing"
)

// OrderService runs the order-creation pipeline: template lookup, section
// resolution, pricing and persistence, all inside one transaction per
// request.
type OrderService struct {
	db       *gorm.DB
	telegram *TelegramService
}

// NewOrderService constructs OrderService.
func NewOrderService(db *gorm.DB, telegram *TelegramService) *OrderService {
	return &OrderService{db: db, telegram: telegram}
}

// SectionOverrideInput is a caller-supplied partial size for one section.
type SectionOverrideInput struct {
	SectionOrder int  `json:"section_order"`
	WidthMM      *int `json:"width_mm"`
	HeightMM     *int `json:"height_mm"`
}

// CreateOrderInput describes a dimensioned order request.
type CreateOrderInput struct {
	TemplateID uuid.UUID
	Kind       string
	WidthMM    int
	HeightMM   int
	Sections   []SectionOverrideInput
}

// CreateOrder creates a product order with resolved sections and a computed
// total. Nothing is persisted when any step fails.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.ProductOrder, error) {
	var order *models.ProductOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := createProductOrder(tx, input)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// createProductOrder is the transactional body shared by the plain order and
// the order-detail flows. Template sections are read inside the caller's
// transaction so resolution always sees a consistent snapshot.
func createProductOrder(tx *gorm.DB, input CreateOrderInput) (*models.ProductOrder, error) {
	var tpl models.Template
	if err := tx.First(&tpl, "id = ?", input.TemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrTemplateNotFound
		}
		return nil, err
	}
	if tpl.Kind != input.Kind {
		return nil, pricing.ErrTemplateKindMismatch
	}

	var templateSections []models.TemplateSection
	if err := tx.Where("template_id = ?", tpl.ID).
		Order("section_order asc").
		Find(&templateSections).Error; err != nil {
		return nil, err
	}

	specs := make([]pricing.SectionSpec, 0, len(templateSections))
	byOrder := make(map[int]uuid.UUID, len(templateSections))
	for _, ts := range templateSections {
		specs = append(specs, pricing.SectionSpec{
			SectionOrder: ts.SectionOrder,
			Orientation:  ts.Orientation,
			WidthRatio:   ts.WidthRatio,
			HeightRatio:  ts.HeightRatio,
		})
		byOrder[ts.SectionOrder] = ts.ID
	}

	overrides := make([]pricing.Override, 0, len(input.Sections))
	for _, sec := range input.Sections {
		overrides = append(overrides, pricing.Override{
			SectionOrder: sec.SectionOrder,
			WidthMM:      sec.WidthMM,
			HeightMM:     sec.HeightMM,
		})
	}

	resolved, err := pricing.ResolveSections(input.WidthMM, input.HeightMM, specs, overrides)
	if err != nil {
		return nil, err
	}

	order := models.ProductOrder{
		Kind:       input.Kind,
		TemplateID: tpl.ID,
		WidthMM:    input.WidthMM,
		HeightMM:   input.HeightMM,
		TotalPrice: pricing.OrderTotal(input.WidthMM, input.HeightMM, resolved, tpl.BasePricePerM2).Round(2),
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}

	for _, size := range resolved {
		templateSectionID := byOrder[size.SectionOrder]
		section := models.OrderSection{
			OrderID:           order.ID,
			TemplateSectionID: &templateSectionID,
			SectionOrder:      size.SectionOrder,
			WidthMM:           size.WidthMM,
			HeightMM:          size.HeightMM,
		}
		if err := tx.Create(&section).Error; err != nil {
			return nil, err
		}
		section.AreaM2 = section.ComputeAreaM2()
		order.Sections = append(order.Sections, section)
	}

	return &order, nil
}

// OrderDetailInput carries the material configuration of the combined flow.
type OrderDetailInput struct {
	MaterialClass     string
	MaterialTypeID    *uuid.UUID
	GlassLayerID      *uuid.UUID
	GlassTypeID       *uuid.UUID
	ProviderID        *uuid.UUID
	ProfilTypeID      *uuid.UUID
	SashProfilTypeID  *uuid.UUID
	FrameProfilTypeID *uuid.UUID
	DesignOptionID    *uuid.UUID
	DesignVariantID   *uuid.UUID
	HandleTypeID      *uuid.UUID
	IncludeWaste      bool
	WastePercentage   *float64
	HasBalcony        bool
	HasMetal          bool
	MetalThickness    string
	ShelfWidth        float64
	HasHandle         bool
}

// CreateOrderDetailInput is the full order-detail request.
type CreateOrderDetailInput struct {
	CompanyID    *uuid.UUID
	Order        models.NewOrder
	ProductOrder CreateOrderInput
	Detail       OrderDetailInput
}

// CreateOrderDetail runs the combined flow: NewOrder record, dimensioned
// product order, detail row, margin lookup and the explicit summary-record
// call. CostPrice, Profit and TotalPrice land in a single update so a reader
// never sees one without the others.
func (s *OrderService) CreateOrderDetail(input CreateOrderDetailInput) (*models.OrderDetail, error) {
	var detail *models.OrderDetail
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order := input.Order
		order.CompanyID = input.CompanyID
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		productOrder, err := createProductOrder(tx, input.ProductOrder)
		if err != nil {
			return err
		}

		d := models.OrderDetail{
			OrderID:           order.ID,
			ProductOrderID:    productOrder.ID,
			MaterialClass:     input.Detail.MaterialClass,
			MaterialTypeID:    input.Detail.MaterialTypeID,
			GlassLayerID:      input.Detail.GlassLayerID,
			GlassTypeID:       input.Detail.GlassTypeID,
			ProviderID:        input.Detail.ProviderID,
			ProfilTypeID:      input.Detail.ProfilTypeID,
			SashProfilTypeID:  input.Detail.SashProfilTypeID,
			FrameProfilTypeID: input.Detail.FrameProfilTypeID,
			DesignOptionID:    input.Detail.DesignOptionID,
			DesignVariantID:   input.Detail.DesignVariantID,
			HandleTypeID:      input.Detail.HandleTypeID,
			IncludeWaste:      input.Detail.IncludeWaste,
			WastePercentage:   input.Detail.WastePercentage,
			HasBalcony:        input.Detail.HasBalcony,
			HasMetal:          input.Detail.HasMetal,
			MetalThickness:    input.Detail.MetalThickness,
			ShelfWidth:        input.Detail.ShelfWidth,
			HasHandle:         input.Detail.HasHandle,
		}
		if err := tx.Create(&d).Error; err != nil {
			return err
		}

		rule, err := lookupMarginRule(tx, input.CompanyID, input.Detail.MaterialClass)
		if err != nil {
			return err
		}

		baseCost := productOrder.TotalPrice
		profit := pricing.ProfitAmount(baseCost, productOrder.WidthMM, productOrder.HeightMM, rule).Round(2)

		order.CostPrice = baseCost
		order.Profit = profit
		order.TotalPrice = baseCost.Add(profit)
		if err := tx.Model(&models.NewOrder{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"cost_price":  order.CostPrice,
			"profit":      order.Profit,
			"total_price": order.TotalPrice,
		}).Error; err != nil {
			return err
		}

		if err := createOrderSummary(tx, d.ID, order.TotalPrice); err != nil {
			return err
		}

		d.Order = &order
		d.ProductOrder = productOrder
		detail = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.telegram != nil {
		go s.notifyOrderDetail(detail)
	}
	return detail, nil
}

// lookupMarginRule finds the company's margin configuration for the material
// class. No company or no matching configuration means no markup.
func lookupMarginRule(tx *gorm.DB, companyID *uuid.UUID, materialClass string) (*pricing.MarginRule, error) {
	if companyID == nil {
		return nil, nil
	}
	var config models.ProductConfig
	err := tx.Where("company_id = ? AND product_type = ?", companyID, materialClass).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pricing.MarginRule{
		IsPercentage: config.IsPercentage,
		IsPerArea:    config.IsPerArea,
		Profit:       config.Profit,
	}, nil
}

// createOrderSummary appends the running ledger row for a freshly created
// order detail.
func createOrderSummary(tx *gorm.DB, detailID uuid.UUID, total decimal.Decimal) error {
	var last models.OrderSummary
	next := 1
	err := tx.Order("sequence_number desc").First(&last).Error
	if err == nil {
		next = last.SequenceNumber + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	summary := models.OrderSummary{
		OrderDetailID:  detailID,
		SequenceNumber: next,
		TotalPrice:     total,
		Status:         models.OrderStatusWaiting,
	}
	return tx.Create(&summary).Error
}

func (s *OrderService) notifyOrderDetail(detail *models.OrderDetail) {
	if detail == nil || detail.Order == nil || detail.ProductOrder == nil {
		return
	}
	notification := OrderNotification{
		OrderNumber: detail.Order.OrderNumber,
		Kind:        detail.ProductOrder.Kind,
		WidthMM:     detail.ProductOrder.WidthMM,
		HeightMM:    detail.ProductOrder.HeightMM,
		TotalPrice:  detail.Order.TotalPrice.StringFixed(2),
		OwnerName:   detail.Order.OrderOwner,
		PhoneNumber: detail.Order.PhoneNumber,
		Location:    detail.Order.Location,
	}
	if err := s.telegram.NotifyNewOrder(notification); err != nil {
		log.Printf("[Order] Telegram notification failed for %s: %v", detail.Order.OrderNumber, err)
	}
}
