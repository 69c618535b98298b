package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// Supplier statuses
const (
	SupplierActive    = "active"
	SupplierInactive  = "inactive"
	SupplierSuspended = "suspended"
)

// Product statuses
const (
	ProductActive     = "active"
	ProductOutOfStock = "out_of_stock"
	ProductInactive   = "inactive"
)

// Sale statuses
const (
	SalePaid      = "paid"
	SalePending   = "pending"
	SaleCancelled = "cancelled"
)

// Activity log levels
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelDanger  = "danger"
)

// User - An employee account. Admins manage the back office, cashiers run the till.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex;size:120" json:"email"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	Role         string    `gorm:"size:20" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName joins first and last name for notifications and the sale projection.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the account may use the management screens.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Supplier - Who we buy stock from
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120" json:"name"`
	Email     string    `gorm:"size:120" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Address   string    `json:"address"`
	Status    string    `gorm:"size:20;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Category - Product grouping
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;index" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product - The Inventory
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:120" json:"name"`
	CategoryID uint            `json:"category_id"`
	Category   Category        `json:"category"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Status     string          `gorm:"size:20;default:active" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Sale - The Transaction Header
// TotalAmount is derived from the line items and rewritten on every
// create/update; it is never trusted as stored.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex;size:40" json:"invoice_number"`
	Date          time.Time       `json:"date"`
	CashierID     uint            `json:"cashier_id"`
	Cashier       User            `json:"cashier"`
	Status        string          `gorm:"size:20;default:paid" json:"status"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - One product/quantity/price row of a sale
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"index" json:"sale_id"`
	ProductID uint            `gorm:"index" json:"product_id"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2)" json:"line_total"`
}

// ComputeLineTotal derives quantity * unit price.
func (i SaleItem) ComputeLineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ActivityLog - Append-only audit trail of admin actions.
// Rows are only ever inserted, never updated or deleted here.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	User      User      `json:"user"`
	Verb      string    `gorm:"size:120" json:"verb"`
	Level     string    `gorm:"size:20" json:"level"`
	Icon      string    `gorm:"size:40" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}
