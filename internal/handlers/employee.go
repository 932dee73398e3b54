package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/models"
	"github.com/example/deraza/internal/utils"
)

// EmployeeHandler manages employees and salary payments.
type EmployeeHandler struct {
	db *gorm.DB
}

// NewEmployeeHandler constructs EmployeeHandler.
func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

type employeeRequest struct {
	FullName    string  `json:"full_name"`
	PhoneNumber string  `json:"phone_number"`
	Profession  string  `json:"profession"`
	Share       float64 `json:"share"`
}

// ListEmployees returns paginated employees.
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var employees []models.Employee
	var total int64

	if err := h.db.Model(&models.Employee{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("created_at desc").
		Find(&employees).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    employees,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// CreateEmployee persists a new employee.
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.FullName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "full_name is required")
	}
	if req.PhoneNumber != "" && !utils.IsValidPhone(req.PhoneNumber) {
		return fiber.NewError(fiber.StatusBadRequest, "phone_number must be in +998XXXXXXXXX form")
	}

	employee := models.Employee{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Profession:  req.Profession,
		Share:       req.Share,
	}
	if err := h.db.Create(&employee).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": employee})
}

// UpdateEmployee updates an existing employee.
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return err
	}

	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.Model(&employee).Updates(map[string]interface{}{
		"full_name":    req.FullName,
		"phone_number": req.PhoneNumber,
		"profession":   req.Profession,
		"share":        req.Share,
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": employee})
}

// DeleteEmployee removes an employee.
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type salaryRequest struct {
	EmployeeID uuid.UUID       `json:"employee"`
	Amount     decimal.Decimal `json:"amount"`
}

// AddSalary records a salary payment and bumps the employee's total in the
// same transaction.
func (h *EmployeeHandler) AddSalary(c *fiber.Ctx) error {
	var req salaryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	var payment models.EmployeePayment
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
			return err
		}

		payment = models.EmployeePayment{
			EmployeeID: employee.ID,
			Amount:     req.Amount,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		employee.TotalSalary = employee.TotalSalary.Add(req.Amount)
		if err := tx.Model(&employee).Update("total_salary", employee.TotalSalary).Error; err != nil {
			return err
		}

		payment.Employee = &employee
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

// SalaryHistory returns an employee's payments, newest first.
func (h *EmployeeHandler) SalaryHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var employee models.Employee
	if err := h.db.First(&employee, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return err
	}

	var payments []models.EmployeePayment
	if err := h.db.Where("employee_id = ?", id).Order("created_at desc").
		Find(&payments).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"employee": employee,
		"payments": payments,
	}})
}
