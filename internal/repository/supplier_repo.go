package repository

import (
	"strings"

	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

// SupplierFilter narrows the supplier list.
type SupplierFilter struct {
	Search string // substring of the name
	Status string
	Page   Page
}

// SupplierSummary tallies the filtered set per status.
type SupplierSummary struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Suspended int64 `json:"suspended"`
}

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (f SupplierFilter) apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *SupplierRepository) List(f SupplierFilter) ([]models.Supplier, SupplierSummary, error) {
	filtered := f.apply(r.db.Model(&models.Supplier{}))

	var summary SupplierSummary
	if err := filtered.Session(&gorm.Session{}).Count(&summary.Total).Error; err != nil {
		return nil, summary, err
	}
	statusCounts := map[string]*int64{
		models.SupplierActive:    &summary.Active,
		models.SupplierInactive:  &summary.Inactive,
		models.SupplierSuspended: &summary.Suspended,
	}
	for status, dest := range statusCounts {
		if err := filtered.Session(&gorm.Session{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, summary, err
		}
	}

	page := f.Page.normalize(DefaultPageSize)
	var suppliers []models.Supplier
	err := page.apply(filtered.Session(&gorm.Session{}).Order("created_at DESC")).Find(&suppliers).Error
	return suppliers, summary, err
}

func (r *SupplierRepository) Get(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *SupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *SupplierRepository) Delete(id uint) (*models.Supplier, error) {
	supplier, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.Supplier{}, id).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}
