package repository

import (
	"strings"

	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

// ProductFilter narrows the product list.
type ProductFilter struct {
	Search     string
	CategoryID uint
	Status     string
	Page       Page
}

// ProductSummary tallies the filtered set per status.
type ProductSummary struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	OutOfStock int64 `json:"out_of_stock"`
	Inactive   int64 `json:"inactive"`
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (f ProductFilter) apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ProductRepository) List(f ProductFilter) ([]models.Product, ProductSummary, error) {
	filtered := f.apply(r.db.Model(&models.Product{}))

	var summary ProductSummary
	if err := filtered.Session(&gorm.Session{}).Count(&summary.Total).Error; err != nil {
		return nil, summary, err
	}
	statusCounts := map[string]*int64{
		models.ProductActive:     &summary.Active,
		models.ProductOutOfStock: &summary.OutOfStock,
		models.ProductInactive:   &summary.Inactive,
	}
	for status, dest := range statusCounts {
		if err := filtered.Session(&gorm.Session{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, summary, err
		}
	}

	page := f.Page.normalize(DefaultPageSize)
	var products []models.Product
	err := page.apply(filtered.Session(&gorm.Session{}).Preload("Category").Order("created_at DESC")).
		Find(&products).Error
	return products, summary, err
}

func (r *ProductRepository) Get(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product and every sale item that references it, in
// one transaction. The items go first so a failure can never leave an
// orphaned reference; any error rolls the whole delete back.
func (r *ProductRepository) Delete(id uint) (*models.Product, error) {
	product, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
