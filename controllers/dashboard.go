package controllers

import (
	"net/http"
	"time"

	"coursemart-backend/config"
	"coursemart-backend/models"
	"coursemart-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalUsers       int64             `json:"totalUsers"`
	MonthlyRevenue   float64           `json:"monthlyRevenue"`
	TotalInvoices    int64             `json:"totalInvoices"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
	RecentInvoices   []RecentInvoice   `json:"recentInvoices"`
	UpcomingSessions []UpcomingSession `json:"upcomingSessions"`
}

type LowStockProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type RecentInvoice struct {
	InvoiceCode string    `json:"invoiceCode"`
	Username    string    `json:"username"`
	TotalPrice  float64   `json:"totalPrice"`
	Date        time.Time `json:"date"`
}

type UpcomingSession struct {
	ProductName string    `json:"productName"`
	Username    string    `json:"username"`
	Time        time.Time `json:"time"`
}

// GetDashboardOverview returns the store-wide admin dashboard.
func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview

	if err := config.DB.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&overview.TotalUsers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count users")
		return
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := config.DB.Model(&models.Invoice{}).
		Where("date >= ?", firstOfMonth).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&overview.MonthlyRevenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	if err := config.DB.Model(&models.Invoice{}).Count(&overview.TotalInvoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count invoices")
		return
	}

	if err := config.DB.Model(&models.Product{}).
		Select("id, name, stock").
		Where("stock <= ?", 5).
		Order("stock").
		Limit(5).
		Scan(&overview.LowStockProducts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get low stock products")
		return
	}

	if err := config.DB.Model(&models.Invoice{}).
		Select("invoices.invoice_code, users.username, invoices.total_price, invoices.date").
		Joins("JOIN users ON users.id = invoices.user_id").
		Order("invoices.date DESC").
		Limit(5).
		Scan(&overview.RecentInvoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get recent invoices")
		return
	}

	if err := config.DB.Model(&models.InvoiceItem{}).
		Select("products.name AS product_name, users.username, schedules.time").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("JOIN users ON users.id = invoices.user_id").
		Joins("JOIN products ON products.id = invoice_items.product_id").
		Joins("JOIN schedules ON schedules.id = invoice_items.schedule_id").
		Where("schedules.time >= ?", now).
		Order("schedules.time").
		Limit(5).
		Scan(&overview.UpcomingSessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get upcoming sessions")
		return
	}

	c.JSON(http.StatusOK, overview)
}
