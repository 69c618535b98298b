package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-pos-backoffice/internal/models"
)

// SaleFilter narrows the sales list. Zero values mean "no filter".
type SaleFilter struct {
	ProductName string // matches any line item's product name
	Invoice     string
	CashierID   uint
	Status      string
	DateFrom    time.Time
	DateTo      time.Time
	Page        Page
}

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// NewInvoiceNumber generates an invoice identifier for sales submitted
// without one.
func NewInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

func (f SaleFilter) apply(q *gorm.DB) *gorm.DB {
	if pn := strings.TrimSpace(f.ProductName); pn != "" {
		q = q.Joins("JOIN sale_items ON sale_items.sale_id = sales.id").
			Joins("JOIN products ON products.id = sale_items.product_id").
			Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(pn)+"%").
			Distinct("sales.*")
	}
	if inv := strings.TrimSpace(f.Invoice); inv != "" {
		q = q.Where("LOWER(invoice_number) LIKE ?", "%"+strings.ToLower(inv)+"%")
	}
	if f.CashierID != 0 {
		q = q.Where("cashier_id = ?", f.CashierID)
	}
	if f.Status != "" {
		q = q.Where("sales.status = ?", f.Status)
	}
	// Date bounds are inclusive whole days.
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom.Truncate(24*time.Hour))
	}
	if !f.DateTo.IsZero() {
		q = q.Where("date < ?", f.DateTo.Truncate(24*time.Hour).AddDate(0, 0, 1))
	}
	return q
}

// List returns one page of sales (newest first) with cashier and items
// preloaded, the filtered total, and the revenue summed over the page.
func (r *SaleRepository) List(f SaleFilter) ([]models.Sale, int64, decimal.Decimal, error) {
	filtered := f.apply(r.db.Model(&models.Sale{}))

	var total int64
	if err := filtered.Session(&gorm.Session{}).Distinct("sales.id").Count(&total).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	page := f.Page.normalize(SalesPageSize)
	var sales []models.Sale
	err := page.apply(filtered.Session(&gorm.Session{}).
		Preload("Cashier").
		Preload("Items").
		Preload("Items.Product").
		Order("date DESC")).
		Find(&sales).Error
	if err != nil {
		return nil, 0, decimal.Zero, err
	}

	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.TotalAmount)
	}
	return sales, total, revenue, nil
}

// Get loads a sale with its cashier and ordered line items.
func (r *SaleRepository) Get(id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.
		Preload("Cashier").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sale_items.id") }).
		Preload("Items.Product").
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// CreateWithItems persists a sale header with its line items as one
// transaction: header first, then the items, then the total rederived
// from those items and written back. A failure at any step leaves
// nothing behind.
func (r *SaleRepository) CreateWithItems(sale *models.Sale, items []models.SaleItem) error {
	if sale.InvoiceNumber == "" {
		sale.InvoiceNumber = NewInvoiceNumber()
	}
	if sale.Date.IsZero() {
		sale.Date = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		sale.TotalAmount = decimal.Zero
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return err
		}
		if err := insertItems(tx, sale, items); err != nil {
			return err
		}
		return recomputeTotal(tx, sale)
	})
}

// UpdateWithItems rewrites an existing sale: header saved, old items
// replaced by the submitted set, total rederived. The stored total is
// never trusted as-is.
func (r *SaleRepository) UpdateWithItems(sale *models.Sale, items []models.SaleItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(sale).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := insertItems(tx, sale, items); err != nil {
			return err
		}
		return recomputeTotal(tx, sale)
	})
}

func insertItems(tx *gorm.DB, sale *models.Sale, items []models.SaleItem) error {
	for i := range items {
		items[i].ID = 0
		items[i].SaleID = sale.ID
		items[i].LineTotal = items[i].ComputeLineTotal()
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	sale.Items = items
	return nil
}

func recomputeTotal(tx *gorm.DB, sale *models.Sale) error {
	total := decimal.Zero
	for _, item := range sale.Items {
		total = total.Add(item.LineTotal)
	}
	sale.TotalAmount = total
	return tx.Model(&models.Sale{}).Where("id = ?", sale.ID).
		Update("total_amount", total).Error
}

// Delete removes one sale and its items.
func (r *SaleRepository) Delete(id uint) (*models.Sale, error) {
	sale, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Sale{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// BulkDelete removes every sale in ids and reports how many matched.
// An empty or unmatched set is a no-op, not an error.
func (r *SaleRepository) BulkDelete(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id IN ?", ids).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Sale{})
		count = res.RowsAffected
		return res.Error
	})
	return count, err
}

// SalesReportResult holds the analytics totals for a date range.
type SalesReportResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// ReportTotals calculates revenue and order count within a date range.
// Zero bounds mean "no bound".
func (r *SaleRepository) ReportTotals(start, end time.Time) (*SalesReportResult, error) {
	ranged := func() *gorm.DB {
		q := r.db.Model(&models.Sale{})
		if !start.IsZero() {
			q = q.Where("date >= ?", start)
		}
		if !end.IsZero() {
			q = q.Where("date <= ?", end)
		}
		return q
	}

	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := ranged().
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	if err := ranged().Count(&result.TotalCount).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// TopSellingRow is one line of the best-sellers report.
type TopSellingRow struct {
	ProductName string  `json:"product_name"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

// TopSelling returns the best sellers by quantity.
func (r *SaleRepository) TopSelling(limit int) ([]TopSellingRow, error) {
	var rows []TopSellingRow
	err := r.db.Table("sale_items").
		Select("products.name as product_name, SUM(sale_items.quantity) as sold, SUM(sale_items.line_total) as revenue").
		Joins("JOIN products ON sale_items.product_id = products.id").
		Group("products.name").
		Order("sold desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Recent returns the newest sales for the report footer.
func (r *SaleRepository) Recent(limit int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.Preload("Cashier").Order("date desc").Limit(limit).Find(&sales).Error
	return sales, err
}
