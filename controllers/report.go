// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"coursemart-backend/config"
	"coursemart-backend/models"
	"coursemart-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopProducts           []ProductSummary `json:"topProducts"`
	TopBuyers             []BuyerSummary   `json:"topBuyers"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type ProductSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type BuyerSummary struct {
	Username string  `json:"username"`
	Orders   int     `json:"orders"`
	Spent    float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalInvoices int64   `json:"totalInvoices"`
	TotalProducts int64   `json:"totalProducts"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// GetReportAnalytics returns the complete revenue analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(rc.getQuarterStart(now), rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topProducts, err := rc.getTopProducts(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top products")
		return
	}

	topBuyers, err := rc.getTopBuyers(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top buyers")
		return
	}

	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopProducts:           topProducts,
		TopBuyers:             topBuyers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Invoice{}).
		Where("date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopProducts(start, end time.Time, limit int) ([]ProductSummary, error) {
	var products []ProductSummary
	err := config.DB.Table("invoice_items").
		Select("products.name, SUM(invoice_items.quantity) as count, SUM(invoice_items.sub_total) as revenue").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("JOIN products ON products.id = invoice_items.product_id").
		Where("invoices.date BETWEEN ? AND ?", start, end).
		Group("products.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&products).Error
	return products, err
}

func (rc *ReportController) getTopBuyers(start, end time.Time, limit int) ([]BuyerSummary, error) {
	var buyers []BuyerSummary
	err := config.DB.Table("invoices").
		Select("users.username, COUNT(invoices.id) as orders, SUM(invoices.total_price) as spent").
		Joins("JOIN users ON users.id = invoices.user_id").
		Where("invoices.date BETWEEN ? AND ?", start, end).
		Group("users.username").
		Order("spent DESC").
		Limit(limit).
		Scan(&buyers).Error
	return buyers, err
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	if err := config.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Invoice{}).Count(&stats.TotalInvoices).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return stats, err
	}
	if stats.TotalInvoices > 0 {
		var totalRevenue float64
		if err := config.DB.Model(&models.Invoice{}).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&totalRevenue).Error; err != nil {
			return stats, err
		}
		stats.AvgOrderValue = totalRevenue / float64(stats.TotalInvoices)
	}

	return stats, nil
}
