package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

// EmployeeHandler is the admin CRUD over employee accounts. Every
// operation runs against a queryable set that excludes the caller, so
// an admin cannot view, edit or delete their own record here.
type EmployeeHandler struct {
	employees *repository.EmployeeRepository
	audit     *audit.Recorder
}

func NewEmployeeHandler(employees *repository.EmployeeRepository, recorder *audit.Recorder) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, audit: recorder}
}

type EmployeeCreateRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=admin cashier"`
	IsActive  *bool  `json:"is_active"`
}

type EmployeeUpdateRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=admin cashier"`
	IsActive  *bool  `json:"is_active"`
	Password  string `json:"password" binding:"omitempty,min=8"`
}

// List applies the search form (free text over first/last name and
// email, role, active status) and returns a page of 15 plus tallies
// computed from the same filtered set.
func (h *EmployeeHandler) List(c *gin.Context) {
	filter := repository.EmployeeFilter{
		Search: c.Query("search"),
		Role:   statusIn(c.Query("role"), models.RoleAdmin, models.RoleCashier),
		Status: statusIn(c.Query("status"), "active", "inactive"),
		Page:   repository.Page{Number: queryInt(c, "page")},
	}

	employees, summary, err := h.employees.List(middleware.UserID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"summary":   summary,
	})
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var input EmployeeCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	employee := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		IsActive:     true,
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := h.employees.Create(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create employee, email or username already taken"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Employee added", models.LevelSuccess, "user-plus")
	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Employee %s created", employee.FullName()),
		"employee": employee,
	})
}

func (h *EmployeeHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	employee, err := h.employees.Get(middleware.UserID(c), id)
	if err != nil {
		notFoundOr(c, err, "Employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	// Self-exclusion happens here: Get never returns the caller's row.
	employee, err := h.employees.Get(middleware.UserID(c), id)
	if err != nil {
		notFoundOr(c, err, "Employee")
		return
	}

	var input EmployeeUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	employee.FirstName = input.FirstName
	employee.LastName = input.LastName
	employee.Email = input.Email
	employee.Role = input.Role
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}
	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		employee.PasswordHash = string(hashedPassword)
	}

	if err := h.employees.Update(employee); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Employee updated", models.LevelInfo, "edit")
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Employee %s updated", employee.FullName()),
		"employee": employee,
	})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	employee, err := h.employees.Delete(middleware.UserID(c), id)
	if err != nil {
		notFoundOr(c, err, "Employee")
		return
	}

	h.audit.Record(middleware.UserID(c), "Employee deleted", models.LevelDanger, "trash")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Employee %s deleted", employee.FullName()),
	})
}
