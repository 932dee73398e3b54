package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/deraza/internal/models"
)

// DashboardHandler serves aggregate statistics for the admin screens.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats returns order counts, status breakdown and money totals.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.NewOrder{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.OrderSummary{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue decimal.Decimal
	if err := h.db.Model(&models.NewOrder{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var totalProfit decimal.Decimal
	if err := h.db.Model(&models.NewOrder{}).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&totalProfit).Error; err != nil {
		return err
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	var todayOrders int64
	if err := h.db.Model(&models.NewOrder{}).
		Where("created_at >= ?", startOfDay).
		Count(&todayOrders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":      totalUsers,
			"total_orders":     totalOrders,
			"today_orders":     todayOrders,
			"orders_by_status": ordersByStatus,
			"total_revenue":    totalRevenue,
			"total_profit":     totalProfit,
		},
	})
}
