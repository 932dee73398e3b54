package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/models"
	"github.com/example/deraza/internal/utils"
)

// TemplateHandler manages window/door/fortochka template administration.
type TemplateHandler struct {
	db *gorm.DB
}

// NewTemplateHandler constructs TemplateHandler.
func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{db: db}
}

type templateSectionRequest struct {
	SectionKind  string   `json:"section_kind"`
	HasGlass     *bool    `json:"has_glass"`
	SectionOrder int      `json:"section_order"`
	Orientation  string   `json:"orientation"`
	WidthRatio   *float64 `json:"width_ratio"`
	HeightRatio  *float64 `json:"height_ratio"`
}

type templateRequest struct {
	Name           *string                  `json:"name"`
	Kind           string                   `json:"kind"`
	BaseWidthMM    int                      `json:"base_width_mm"`
	BaseHeightMM   int                      `json:"base_height_mm"`
	BasePricePerM2 decimal.Decimal          `json:"base_price_per_m2"`
	Sections       []templateSectionRequest `json:"sections"`
}

func validTemplateKind(kind string) bool {
	switch kind {
	case models.TemplateKindWindow, models.TemplateKindDoor, models.TemplateKindFortochka:
		return true
	}
	return false
}

func validSectionKind(kind string) bool {
	switch kind {
	case "", models.SectionKindTop, models.SectionKindMiddle, models.SectionKindBottom, models.SectionKindWhole:
		return true
	}
	return false
}

func validRatio(ratio *float64) bool {
	return ratio == nil || (*ratio > 0 && *ratio <= 1)
}

func (r templateRequest) validate() error {
	if !validTemplateKind(r.Kind) {
		return fiber.NewError(fiber.StatusBadRequest, "kind must be one of WINDOW, DOOR, FORTOCHKA")
	}
	if r.BaseWidthMM <= 0 || r.BaseHeightMM <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "base dimensions must be positive")
	}
	if !r.BasePricePerM2.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "base_price_per_m2 must be positive")
	}

	seen := make(map[int]struct{}, len(r.Sections))
	for _, sec := range r.Sections {
		if sec.SectionOrder < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "section_order must not be negative")
		}
		if _, dup := seen[sec.SectionOrder]; dup {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("duplicate section_order %d", sec.SectionOrder))
		}
		seen[sec.SectionOrder] = struct{}{}

		if sec.Orientation != models.OrientationVertical && sec.Orientation != models.OrientationHorizontal {
			return fiber.NewError(fiber.StatusBadRequest, "orientation must be VERTICAL or HORIZONTAL")
		}
		if !validSectionKind(sec.SectionKind) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid section_kind")
		}
		if !validRatio(sec.WidthRatio) || !validRatio(sec.HeightRatio) {
			return fiber.NewError(fiber.StatusBadRequest, "ratios must be in (0, 1]")
		}
	}
	return nil
}

// ListTemplates returns paginated templates with their sections.
func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var templates []models.Template
	var total int64

	if err := h.db.Model(&models.Template{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("section_order asc")
	}).Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&templates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    templates,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetTemplate returns a single template with its sections in order.
func (h *TemplateHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var template models.Template
	if err := h.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("section_order asc")
	}).First(&template, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": template})
}

// CreateTemplate persists a template and its sections in one transaction.
func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	template := models.Template{
		Name:           req.Name,
		Kind:           req.Kind,
		BaseWidthMM:    req.BaseWidthMM,
		BaseHeightMM:   req.BaseHeightMM,
		BasePricePerM2: req.BasePricePerM2,
	}
	for _, sec := range req.Sections {
		hasGlass := true
		if sec.HasGlass != nil {
			hasGlass = *sec.HasGlass
		}
		template.Sections = append(template.Sections, models.TemplateSection{
			SectionKind:  sec.SectionKind,
			HasGlass:     hasGlass,
			SectionOrder: sec.SectionOrder,
			Orientation:  sec.Orientation,
			WidthRatio:   sec.WidthRatio,
			HeightRatio:  sec.HeightRatio,
		})
	}

	if err := h.db.Create(&template).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": template})
}

// UpdateTemplate replaces a template's fields and section layout.
func (h *TemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	var template models.Template
	if err := h.db.First(&template, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":              req.Name,
			"kind":              req.Kind,
			"base_width_mm":     req.BaseWidthMM,
			"base_height_mm":    req.BaseHeightMM,
			"base_price_per_m2": req.BasePricePerM2,
		}
		if err := tx.Model(&template).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("template_id = ?", template.ID).
			Delete(&models.TemplateSection{}).Error; err != nil {
			return err
		}
		for _, sec := range req.Sections {
			hasGlass := true
			if sec.HasGlass != nil {
				hasGlass = *sec.HasGlass
			}
			section := models.TemplateSection{
				TemplateID:   template.ID,
				SectionKind:  sec.SectionKind,
				HasGlass:     hasGlass,
				SectionOrder: sec.SectionOrder,
				Orientation:  sec.Orientation,
				WidthRatio:   sec.WidthRatio,
				HeightRatio:  sec.HeightRatio,
			}
			if err := tx.Create(&section).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return h.GetTemplate(c)
}

// DeleteTemplate removes a template and its sections.
func (h *TemplateHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Template{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListSections returns a template's sections ordered by section_order.
func (h *TemplateHandler) ListSections(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var template models.Template
	if err := h.db.First(&template, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return err
	}

	var sections []models.TemplateSection
	if err := h.db.Where("template_id = ?", id).
		Order("section_order asc").
		Find(&sections).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": sections})
}
