package repository

import (
	"strings"

	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

// CategoryFilter narrows the category list.
type CategoryFilter struct {
	Search string
	Page   Page
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns one page of categories ordered by name, plus the total
// over the filtered set.
func (r *CategoryRepository) List(f CategoryFilter) ([]models.Category, int64, error) {
	filtered := r.db.Model(&models.Category{})
	if s := strings.TrimSpace(f.Search); s != "" {
		filtered = filtered.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page.normalize(DefaultPageSize)
	var categories []models.Category
	err := page.apply(filtered.Session(&gorm.Session{}).Order("name")).Find(&categories).Error
	return categories, total, err
}

func (r *CategoryRepository) Get(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) (*models.Category, error) {
	category, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.Category{}, id).Error; err != nil {
		return nil, err
	}
	return category, nil
}
