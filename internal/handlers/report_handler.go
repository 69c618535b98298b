package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

// ReportHandler serves the admin dashboard analytics.
type ReportHandler struct {
	sales *repository.SaleRepository
	audit *audit.Recorder
}

func NewReportHandler(sales *repository.SaleRepository, recorder *audit.Recorder) *ReportHandler {
	return &ReportHandler{sales: sales, audit: recorder}
}

// ReportData defines the shape of the analytics response
type ReportData struct {
	TotalRevenue float64                    `json:"total_revenue"`
	TotalOrders  int64                      `json:"total_orders"`
	TopSelling   []repository.TopSellingRow `json:"top_selling"`
	RecentSales  []models.Sale              `json:"recent_sales"`
}

// Sales answers GET /api/reports: all-time revenue and order count,
// top 5 best sellers, the 10 most recent sales.
func (h *ReportHandler) Sales(c *gin.Context) {
	var data ReportData

	// All-time window; the date filters on the sales list cover the rest.
	totals, err := h.sales.ReportTotals(time.Time{}, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}
	data.TotalRevenue = totals.TotalRevenue
	data.TotalOrders = totals.TotalCount

	if data.TopSelling, err = h.sales.TopSelling(5); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}

	if data.RecentSales, err = h.sales.Recent(10); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// Activity answers GET /api/activity: the newest audit entries for the
// dashboard feed.
func (h *ReportHandler) Activity(c *gin.Context) {
	limit := queryInt(c, "limit")
	entries, err := h.audit.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
