package repository

import (
	"strings"

	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

// EmployeeFilter narrows the employee list. Empty fields mean "no filter".
type EmployeeFilter struct {
	Search string // matches first name OR last name OR email
	Role   string
	Status string // "active" | "inactive"
	Page   Page
}

// EmployeeSummary carries the tallies shown next to the list. They are
// computed from the filtered set, not the whole table.
type EmployeeSummary struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// EmployeeRepository queries employee accounts. Every method takes the
// requesting admin's id and excludes that record at query time, so an
// admin can never reach their own account through these screens.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (f EmployeeFilter) apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		term := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			term, term, term)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	switch f.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}
	return q
}

func (r *EmployeeRepository) scope(requesterID uint) *gorm.DB {
	return r.db.Model(&models.User{}).Where("id <> ?", requesterID)
}

// List returns one page of employees plus summary counts over the same
// filtered set.
func (r *EmployeeRepository) List(requesterID uint, f EmployeeFilter) ([]models.User, EmployeeSummary, error) {
	filtered := f.apply(r.scope(requesterID))

	var summary EmployeeSummary
	if err := filtered.Session(&gorm.Session{}).Count(&summary.Total).Error; err != nil {
		return nil, summary, err
	}
	if err := filtered.Session(&gorm.Session{}).Where("is_active = ?", true).Count(&summary.Active).Error; err != nil {
		return nil, summary, err
	}
	if err := filtered.Session(&gorm.Session{}).Where("is_active = ?", false).Count(&summary.Inactive).Error; err != nil {
		return nil, summary, err
	}

	page := f.Page.normalize(DefaultPageSize)
	var employees []models.User
	err := page.apply(filtered.Session(&gorm.Session{}).Order("created_at DESC")).Find(&employees).Error
	return employees, summary, err
}

// Get loads one employee, never the requester's own record.
func (r *EmployeeRepository) Get(requesterID, id uint) (*models.User, error) {
	var employee models.User
	if err := r.scope(requesterID).Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) Create(employee *models.User) error {
	return r.db.Create(employee).Error
}

func (r *EmployeeRepository) Update(employee *models.User) error {
	return r.db.Save(employee).Error
}

// Delete removes an employee by id, respecting self-exclusion. The
// deleted record is returned so callers can name it in notifications.
func (r *EmployeeRepository) Delete(requesterID, id uint) (*models.User, error) {
	employee, err := r.Get(requesterID, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.User{}, employee.ID).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// FindByUsername is used by the login flow; it is not self-excluded.
func (r *EmployeeRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
