package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

func seedCashier(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	cashier := models.User{FirstName: "Jean", LastName: "Petit", Email: "jean@shop.test", Username: "jean", Role: models.RoleCashier, IsActive: true}
	require.NoError(t, db.Create(&cashier).Error)
	return cashier
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateWithItemsDerivesTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	_, espresso, croissant := seedCatalogue(t, db)
	cashier := seedCashier(t, db)

	sale := models.Sale{CashierID: cashier.ID, Status: models.SalePaid}
	items := []models.SaleItem{
		{ProductID: espresso.ID, Quantity: 2, UnitPrice: money("10.00")},
		{ProductID: croissant.ID, Quantity: 1, UnitPrice: money("5.00")},
	}
	require.NoError(t, repo.CreateWithItems(&sale, items))
	require.NotEmpty(t, sale.InvoiceNumber)

	stored, err := repo.Get(sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	require.Equal(t, "25.00", stored.TotalAmount.StringFixed(2))
	require.Equal(t, "20.00", stored.Items[0].LineTotal.StringFixed(2))
	require.Equal(t, "5.00", stored.Items[1].LineTotal.StringFixed(2))

	// The invariant: the stored total always equals the sum of the items.
	sum := decimal.Zero
	for _, item := range stored.Items {
		sum = sum.Add(item.LineTotal)
	}
	require.True(t, stored.TotalAmount.Equal(sum))
}

func TestUpdateWithItemsRederivesTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	_, espresso, croissant := seedCatalogue(t, db)
	cashier := seedCashier(t, db)

	sale := models.Sale{CashierID: cashier.ID, Status: models.SalePaid}
	require.NoError(t, repo.CreateWithItems(&sale, []models.SaleItem{
		{ProductID: espresso.ID, Quantity: 2, UnitPrice: money("10.00")},
	}))

	// Poison the stored total, then update: it must be rederived, never trusted.
	require.NoError(t, db.Model(&models.Sale{}).Where("id = ?", sale.ID).
		Update("total_amount", money("999.99")).Error)

	require.NoError(t, repo.UpdateWithItems(&sale, []models.SaleItem{
		{ProductID: espresso.ID, Quantity: 1, UnitPrice: money("10.00")},
		{ProductID: croissant.ID, Quantity: 3, UnitPrice: money("2.50")},
	}))

	stored, err := repo.Get(sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	require.Equal(t, "17.50", stored.TotalAmount.StringFixed(2))

	var itemCount int64
	require.NoError(t, db.Model(&models.SaleItem{}).Where("sale_id = ?", sale.ID).Count(&itemCount).Error)
	require.Equal(t, int64(2), itemCount, "old items must be replaced, not accumulated")
}

func TestCreateWithItemsIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	_, espresso, _ := seedCatalogue(t, db)
	cashier := seedCashier(t, db)

	first := models.Sale{CashierID: cashier.ID, Status: models.SalePaid, InvoiceNumber: "INV-DUP"}
	require.NoError(t, repo.CreateWithItems(&first, []models.SaleItem{
		{ProductID: espresso.ID, Quantity: 1, UnitPrice: money("10.00")},
	}))

	// Duplicate invoice number makes the header insert fail; no item may survive.
	second := models.Sale{CashierID: cashier.ID, Status: models.SalePaid, InvoiceNumber: "INV-DUP"}
	err := repo.CreateWithItems(&second, []models.SaleItem{
		{ProductID: espresso.ID, Quantity: 4, UnitPrice: money("10.00")},
	})
	require.Error(t, err)

	var saleCount, itemCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, db.Model(&models.SaleItem{}).Count(&itemCount).Error)
	require.Equal(t, int64(1), saleCount)
	require.Equal(t, int64(1), itemCount)
}

func TestBulkDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	_, espresso, _ := seedCatalogue(t, db)
	cashier := seedCashier(t, db)

	var ids []uint
	for i := 0; i < 3; i++ {
		sale := models.Sale{CashierID: cashier.ID, Status: models.SalePaid}
		require.NoError(t, repo.CreateWithItems(&sale, []models.SaleItem{
			{ProductID: espresso.ID, Quantity: 1, UnitPrice: money("1.00")},
		}))
		ids = append(ids, sale.ID)
	}

	count, err := repo.BulkDelete(ids[:2])
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	var remaining int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&remaining).Error)
	require.Equal(t, int64(1), remaining)

	var orphanItems int64
	require.NoError(t, db.Model(&models.SaleItem{}).Where("sale_id IN ?", ids[:2]).Count(&orphanItems).Error)
	require.Equal(t, int64(0), orphanItems)

	// Empty selection is a no-op, not an error.
	count, err = repo.BulkDelete(nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// Unmatched ids delete nothing.
	count, err = repo.BulkDelete([]uint{9999})
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestSaleListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSaleRepository(db)
	_, espresso, croissant := seedCatalogue(t, db)
	cashier := seedCashier(t, db)

	old := models.Sale{CashierID: cashier.ID, Status: models.SalePaid, Date: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.CreateWithItems(&old, []models.SaleItem{
		{ProductID: espresso.ID, Quantity: 1, UnitPrice: money("10.00")},
	}))
	recent := models.Sale{CashierID: cashier.ID, Status: models.SalePending, Date: time.Date(2026, 2, 20, 17, 30, 0, 0, time.UTC)}
	require.NoError(t, repo.CreateWithItems(&recent, []models.SaleItem{
		{ProductID: croissant.ID, Quantity: 2, UnitPrice: money("5.00")},
	}))

	// Newest first.
	sales, total, revenue, err := repo.List(SaleFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, recent.ID, sales[0].ID)
	require.Equal(t, "20.00", revenue.StringFixed(2))

	// Product name goes through the line items.
	sales, total, _, err = repo.List(SaleFilter{ProductName: "crois"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, recent.ID, sales[0].ID)

	// Date range keeps whole days inclusive.
	sales, total, _, err = repo.List(SaleFilter{
		DateFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, old.ID, sales[0].ID)

	// Status composes with the rest.
	_, total, _, err = repo.List(SaleFilter{Status: models.SalePaid})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
