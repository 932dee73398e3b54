package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/middleware"
	"github.com/example/deraza/internal/models"
	"github.com/example/deraza/internal/services"
	"github.com/example/deraza/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db     *gorm.DB
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{db: db, orders: orders}
}

type createOrderRequest struct {
	Template string                          `json:"template"`
	WidthMM  int                             `json:"width_mm"`
	HeightMM int                             `json:"height_mm"`
	Sections []services.SectionOverrideInput `json:"sections"`
}

func (r createOrderRequest) toInput(kind string) (services.CreateOrderInput, error) {
	templateID, err := uuid.Parse(r.Template)
	if err != nil {
		return services.CreateOrderInput{}, fiber.NewError(fiber.StatusBadRequest, "invalid template id")
	}
	return services.CreateOrderInput{
		TemplateID: templateID,
		Kind:       kind,
		WidthMM:    r.WidthMM,
		HeightMM:   r.HeightMM,
		Sections:   r.Sections,
	}, nil
}

// CreateWindowOrder creates a window order from a WINDOW template.
func (h *OrderHandler) CreateWindowOrder(c *fiber.Ctx) error {
	return h.createOrder(c, models.TemplateKindWindow)
}

// CreateDoorOrder creates a door order from a DOOR template.
func (h *OrderHandler) CreateDoorOrder(c *fiber.Ctx) error {
	return h.createOrder(c, models.TemplateKindDoor)
}

func (h *OrderHandler) createOrder(c *fiber.Ctx, kind string) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input, err := req.toInput(kind)
	if err != nil {
		return err
	}

	order, err := h.orders.CreateOrder(input)
	if err != nil {
		return orderError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns paginated product orders with their sections.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var orders []models.ProductOrder
	var total int64

	if err := h.db.Model(&models.ProductOrder{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("section_order asc")
	}).Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single product order with its sections.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.ProductOrder
	if err := h.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("section_order asc")
	}).First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type newOrderRequest struct {
	OrderType      string           `json:"order_type"`
	OrderNumber    string           `json:"order_number"`
	Quantity       int              `json:"quantity"`
	DiscountPrice  *decimal.Decimal `json:"discount_price"`
	AdvancePayment decimal.Decimal  `json:"advance_payment"`
	OrderOwner     string           `json:"order_owner"`
	PhoneNumber    string           `json:"phone_number"`
	Location       string           `json:"location"`
	AdditionalInfo string           `json:"additional_info"`
}

type createOrderDetailRequest struct {
	Order             newOrderRequest    `json:"order"`
	WindowOrder       createOrderRequest `json:"window_order"`
	MaterialClass     string             `json:"material_class"`
	MaterialTypeID    *uuid.UUID         `json:"material_type_id"`
	GlassLayerID      *uuid.UUID         `json:"glass_layer_id"`
	GlassTypeID       *uuid.UUID         `json:"glass_type_id"`
	ProviderID        *uuid.UUID         `json:"provider_id"`
	ProfilTypeID      *uuid.UUID         `json:"profil_type_id"`
	SashProfilTypeID  *uuid.UUID         `json:"sash_profil_type_id"`
	FrameProfilTypeID *uuid.UUID         `json:"frame_profil_type_id"`
	DesignOptionID    *uuid.UUID         `json:"design_option_id"`
	DesignVariantID   *uuid.UUID         `json:"design_variant_id"`
	HandleTypeID      *uuid.UUID         `json:"handle_type_id"`
	IncludeWaste      *bool              `json:"include_waste_percentage"`
	WastePercentage   *float64           `json:"waste_percentage"`
	HasBalcony        bool               `json:"has_balcony"`
	HasMetal          bool               `json:"has_metal"`
	MetalThickness    string             `json:"metal_thickness"`
	ShelfWidth        float64            `json:"shelf_width"`
	HasHandle         bool               `json:"has_handle"`
}

// CreateOrderDetail runs the combined flow: customer order record, window
// order with resolved sections, material detail and the margin roll-up.
func (h *OrderHandler) CreateOrderDetail(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Order.OrderNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_number is required")
	}
	if req.Order.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
	}
	if !utils.IsValidPhone(req.Order.PhoneNumber) {
		return fiber.NewError(fiber.StatusBadRequest, "phone_number must be in +998XXXXXXXXX form")
	}

	orderType := req.Order.OrderType
	if orderType == "" {
		orderType = models.TemplateKindWindow
	}

	productOrderInput, err := req.WindowOrder.toInput(orderType)
	if err != nil {
		return err
	}

	var companyID *uuid.UUID
	var company models.Company
	if err := h.db.First(&company, "master_id = ?", userID).Error; err == nil {
		companyID = &company.ID
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	includeWaste := true
	if req.IncludeWaste != nil {
		includeWaste = *req.IncludeWaste
	}

	input := services.CreateOrderDetailInput{
		CompanyID: companyID,
		Order: models.NewOrder{
			OrderType:      orderType,
			OrderNumber:    req.Order.OrderNumber,
			Quantity:       req.Order.Quantity,
			DiscountPrice:  req.Order.DiscountPrice,
			AdvancePayment: req.Order.AdvancePayment,
			OrderOwner:     req.Order.OrderOwner,
			PhoneNumber:    req.Order.PhoneNumber,
			Location:       req.Order.Location,
			AdditionalInfo: req.Order.AdditionalInfo,
		},
		ProductOrder: productOrderInput,
		Detail: services.OrderDetailInput{
			MaterialClass:     req.MaterialClass,
			MaterialTypeID:    req.MaterialTypeID,
			GlassLayerID:      req.GlassLayerID,
			GlassTypeID:       req.GlassTypeID,
			ProviderID:        req.ProviderID,
			ProfilTypeID:      req.ProfilTypeID,
			SashProfilTypeID:  req.SashProfilTypeID,
			FrameProfilTypeID: req.FrameProfilTypeID,
			DesignOptionID:    req.DesignOptionID,
			DesignVariantID:   req.DesignVariantID,
			HandleTypeID:      req.HandleTypeID,
			IncludeWaste:      includeWaste,
			WastePercentage:   req.WastePercentage,
			HasBalcony:        req.HasBalcony,
			HasMetal:          req.HasMetal,
			MetalThickness:    req.MetalThickness,
			ShelfWidth:        req.ShelfWidth,
			HasHandle:         req.HasHandle,
		},
	}

	detail, err := h.orders.CreateOrderDetail(input)
	if err != nil {
		return orderError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": detail})
}

// ListNewOrders returns paginated customer order records.
func (h *OrderHandler) ListNewOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var orders []models.NewOrder
	var total int64

	if err := h.db.Model(&models.NewOrder{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
