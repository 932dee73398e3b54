package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/middleware"
	"github.com/example/deraza/internal/models"
	"github.com/example/deraza/internal/utils"
)

// CompanyHandler manages dealers, companies and their margin configurations.
type CompanyHandler struct {
	db *gorm.DB
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

type companyRequest struct {
	RegionID     uuid.UUID `json:"region_id"`
	DistrictID   uuid.UUID `json:"district_id"`
	DealerID     uuid.UUID `json:"dealer_id"`
	FreeDelivery *bool     `json:"free_delivery"`
	TelegramLink string    `json:"telegram_link"`
}

type productConfigRequest struct {
	ProductType  string          `json:"product_type"`
	IsPercentage *bool           `json:"is_percentage"`
	IsPerArea    bool            `json:"is_per_area"`
	Profit       decimal.Decimal `json:"profit"`
	Currency     string          `json:"currency"`
}

type createCompanyRequest struct {
	Company       companyRequest         `json:"company"`
	ProductConfig []productConfigRequest `json:"product_config"`
}

func validMaterialClass(class string) bool {
	switch class {
	case models.MaterialClassAlumin, models.MaterialClassPlast, models.MaterialClassThermo:
		return true
	}
	return false
}

// CreateCompany persists a company together with its margin configurations,
// owned by the authenticated user.
func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	for _, conf := range req.ProductConfig {
		if !validMaterialClass(conf.ProductType) {
			return fiber.NewError(fiber.StatusBadRequest, "product_type must be one of ALUMIN, PLAST, THERMO")
		}
		if conf.Profit.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "profit must not be negative")
		}
	}

	freeDelivery := true
	if req.Company.FreeDelivery != nil {
		freeDelivery = *req.Company.FreeDelivery
	}

	company := models.Company{
		MasterID:     &userID,
		RegionID:     req.Company.RegionID,
		DistrictID:   req.Company.DistrictID,
		DealerID:     req.Company.DealerID,
		FreeDelivery: freeDelivery,
		TelegramLink: req.Company.TelegramLink,
	}
	for _, conf := range req.ProductConfig {
		isPercentage := true
		if conf.IsPercentage != nil {
			isPercentage = *conf.IsPercentage
		}
		company.ProductConfigs = append(company.ProductConfigs, models.ProductConfig{
			ProductType:  conf.ProductType,
			IsPercentage: isPercentage,
			IsPerArea:    conf.IsPerArea,
			Profit:       conf.Profit,
			Currency:     conf.Currency,
		})
	}

	if err := h.db.Create(&company).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": company})
}

// UpdateCompany updates company fields and replaces its margin configurations
// when the payload carries any.
func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var company models.Company
	if err := h.db.First(&company, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "company not found")
		}
		return err
	}

	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"region_id":     req.Company.RegionID,
			"district_id":   req.Company.DistrictID,
			"dealer_id":     req.Company.DealerID,
			"telegram_link": req.Company.TelegramLink,
		}
		if req.Company.FreeDelivery != nil {
			updates["free_delivery"] = *req.Company.FreeDelivery
		}
		if err := tx.Model(&company).Updates(updates).Error; err != nil {
			return err
		}

		if len(req.ProductConfig) == 0 {
			return nil
		}
		if err := tx.Where("company_id = ?", company.ID).
			Delete(&models.ProductConfig{}).Error; err != nil {
			return err
		}
		for _, conf := range req.ProductConfig {
			isPercentage := true
			if conf.IsPercentage != nil {
				isPercentage = *conf.IsPercentage
			}
			config := models.ProductConfig{
				CompanyID:    company.ID,
				ProductType:  conf.ProductType,
				IsPercentage: isPercentage,
				IsPerArea:    conf.IsPerArea,
				Profit:       conf.Profit,
				Currency:     conf.Currency,
			}
			if err := tx.Create(&config).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var updated models.Company
	if err := h.db.Preload("ProductConfigs").First(&updated, "id = ?", company.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// ListCompanies returns paginated companies with dealer and configs.
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var companies []models.Company
	var total int64

	if err := h.db.Model(&models.Company{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Preload("Dealer").Preload("Region").Preload("District").
		Preload("ProductConfigs").
		Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&companies).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    companies,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// Dealers

func (h *CompanyHandler) ListDealers(c *fiber.Ctx) error {
	var items []models.Dealer
	if err := h.db.Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *CompanyHandler) CreateDealer(c *fiber.Ctx) error {
	var item models.Dealer
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *CompanyHandler) DeleteDealer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.Dealer{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Providers

func (h *CompanyHandler) ListProviders(c *fiber.Ctx) error {
	var items []models.Provider
	if err := h.db.Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *CompanyHandler) CreateProvider(c *fiber.Ctx) error {
	var item models.Provider
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *CompanyHandler) DeleteProvider(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.Provider{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Regions and districts

func (h *CompanyHandler) ListRegions(c *fiber.Ctx) error {
	var items []models.Region
	if err := h.db.Order("name asc").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *CompanyHandler) CreateRegion(c *fiber.Ctx) error {
	var item models.Region
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *CompanyHandler) ListDistricts(c *fiber.Ctx) error {
	var items []models.District
	query := h.db.Preload("Region").Order("name asc")
	if region := c.Query("region_id"); region != "" {
		id, err := uuid.Parse(region)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid region_id")
		}
		query = query.Where("region_id = ?", id)
	}
	if err := query.Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *CompanyHandler) CreateDistrict(c *fiber.Ctx) error {
	var item models.District
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}
