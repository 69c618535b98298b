package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

// SaleHandler covers the checkout/back-office sale endpoints: list,
// combined header+items create/update, detail, delete, bulk delete and
// the printable JSON projection.
type SaleHandler struct {
	sales    *repository.SaleRepository
	products *repository.ProductRepository
	audit    *audit.Recorder
}

func NewSaleHandler(sales *repository.SaleRepository, products *repository.ProductRepository, recorder *audit.Recorder) *SaleHandler {
	return &SaleHandler{sales: sales, products: products, audit: recorder}
}

type SaleItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// SaleRequest is the combined submission: one header plus the ordered
// line items. The whole thing is validated as a unit; one bad item
// rejects the entire sale before anything touches the database.
type SaleRequest struct {
	InvoiceNumber string            `json:"invoice_number"`
	Date          time.Time         `json:"date"`
	CashierID     uint              `json:"cashier_id"`
	Status        string            `json:"status" binding:"required,oneof=paid pending cancelled"`
	Discount      decimal.Decimal   `json:"discount"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// buildItems turns the submission into line item rows, checking every
// referenced product up front so a sale can never be half-persisted.
func (h *SaleHandler) buildItems(c *gin.Context, reqs []SaleItemRequest) ([]models.SaleItem, bool) {
	items := make([]models.SaleItem, 0, len(reqs))
	for _, it := range reqs {
		if it.UnitPrice.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit price cannot be negative"})
			return nil, false
		}
		if _, err := h.products.Get(it.ProductID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %d not found", it.ProductID)})
			return nil, false
		}
		items = append(items, models.SaleItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return items, true
}

func (h *SaleHandler) List(c *gin.Context) {
	filter := repository.SaleFilter{
		ProductName: c.Query("product_name"),
		Invoice:     c.Query("invoice_number"),
		CashierID:   uint(queryInt(c, "cashier")),
		Status:      statusIn(c.Query("status"), models.SalePaid, models.SalePending, models.SaleCancelled),
		DateFrom:    queryDate(c, "date_from"),
		DateTo:      queryDate(c, "date_to"),
		Page:        repository.Page{Number: queryInt(c, "page")},
	}

	sales, total, revenue, err := h.sales.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":        sales,
		"total":        total,
		"page_revenue": revenue.StringFixed(2),
	})
}

func (h *SaleHandler) Create(c *gin.Context) {
	var input SaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	items, ok := h.buildItems(c, input.Items)
	if !ok {
		return
	}

	cashierID := input.CashierID
	if cashierID == 0 {
		cashierID = middleware.UserID(c)
	}

	sale := models.Sale{
		InvoiceNumber: input.InvoiceNumber,
		Date:          input.Date,
		CashierID:     cashierID,
		Status:        input.Status,
		Discount:      input.Discount,
	}

	if err := h.sales.CreateWithItems(&sale, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Sale created", models.LevelSuccess, "shopping-cart")
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Sale %s recorded", sale.InvoiceNumber),
		"sale":    sale,
	})
}

func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	sale, err := h.sales.Get(id)
	if err != nil {
		notFoundOr(c, err, "Sale")
		return
	}

	var input SaleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	items, ok := h.buildItems(c, input.Items)
	if !ok {
		return
	}

	if input.InvoiceNumber != "" {
		sale.InvoiceNumber = input.InvoiceNumber
	}
	if !input.Date.IsZero() {
		sale.Date = input.Date
	}
	if input.CashierID != 0 {
		sale.CashierID = input.CashierID
	}
	sale.Status = input.Status
	sale.Discount = input.Discount

	if err := h.sales.UpdateWithItems(sale, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Sale updated", models.LevelInfo, "edit")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Sale %s updated", sale.InvoiceNumber),
		"sale":    sale,
	})
}

func (h *SaleHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	sale, err := h.sales.Get(id)
	if err != nil {
		notFoundOr(c, err, "Sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	sale, err := h.sales.Delete(id)
	if err != nil {
		notFoundOr(c, err, "Sale")
		return
	}

	h.audit.Record(middleware.UserID(c), "Sale deleted", models.LevelDanger, "trash")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Sale %s deleted", sale.InvoiceNumber),
	})
}

// BulkDelete removes the selected sales in one operation. Nothing
// selected (or nothing matching) is an informational no-op.
func (h *SaleHandler) BulkDelete(c *gin.Context) {
	ids := make([]uint, 0)
	for _, raw := range c.PostFormArray("sale_ids") {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		var body struct {
			SaleIDs []uint `json:"sale_ids"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			ids = body.SaleIDs
		}
	}

	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No sales selected", "count": 0})
		return
	}

	count, err := h.sales.BulkDelete(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sales"})
		return
	}

	if count > 0 {
		h.audit.Record(middleware.UserID(c),
			fmt.Sprintf("%d sale(s) bulk deleted", count), models.LevelDanger, "trash")
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d sale(s) deleted", count),
		"count":   count,
	})
}

// DetailJSON is the read-only projection used by the invoice popup:
// every monetary value is a string fixed to two decimals.
func (h *SaleHandler) DetailJSON(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	sale, err := h.sales.Get(id)
	if err != nil {
		notFoundOr(c, err, "Sale")
		return
	}

	subtotal := decimal.Zero
	items := make([]gin.H, 0, len(sale.Items))
	for _, item := range sale.Items {
		subtotal = subtotal.Add(item.LineTotal)
		items = append(items, gin.H{
			"product":    item.Product.Name,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice.StringFixed(2),
			"line_total": item.LineTotal.StringFixed(2),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice_number": sale.InvoiceNumber,
		"date":           sale.Date.Format("02/01/2006 15:04"),
		"cashier":        sale.Cashier.FullName(),
		"subtotal":       subtotal.StringFixed(2),
		"discount":       sale.Discount.StringFixed(2),
		"total_amount":   sale.TotalAmount.StringFixed(2),
		"items":          items,
	})
}
