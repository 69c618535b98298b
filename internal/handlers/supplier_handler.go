package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

// SupplierHandler is the admin CRUD over suppliers.
type SupplierHandler struct {
	suppliers *repository.SupplierRepository
	audit     *audit.Recorder
}

func NewSupplierHandler(suppliers *repository.SupplierRepository, recorder *audit.Recorder) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, audit: recorder}
}

type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status" binding:"required,oneof=active inactive suspended"`
}

func (h *SupplierHandler) List(c *gin.Context) {
	filter := repository.SupplierFilter{
		Search: c.Query("search"),
		Status: statusIn(c.Query("status"), models.SupplierActive, models.SupplierInactive, models.SupplierSuspended),
		Page:   repository.Page{Number: queryInt(c, "page")},
	}

	suppliers, summary, err := h.suppliers.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"summary":   summary,
	})
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var input SupplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	supplier := models.Supplier{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Status:  input.Status,
	}
	if err := h.suppliers.Create(&supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Supplier created", models.LevelSuccess, "truck")
	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Supplier %s created", supplier.Name),
		"supplier": supplier,
	})
}

func (h *SupplierHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	supplier, err := h.suppliers.Get(id)
	if err != nil {
		notFoundOr(c, err, "Supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	supplier, err := h.suppliers.Get(id)
	if err != nil {
		notFoundOr(c, err, "Supplier")
		return
	}

	var input SupplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	supplier.Name = input.Name
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.Status = input.Status

	if err := h.suppliers.Update(supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Supplier updated", models.LevelInfo, "edit")
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Supplier %s updated", supplier.Name),
		"supplier": supplier,
	})
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	supplier, err := h.suppliers.Delete(id)
	if err != nil {
		notFoundOr(c, err, "Supplier")
		return
	}

	h.audit.Record(middleware.UserID(c), "Supplier deleted", models.LevelDanger, "trash")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Supplier %s deleted", supplier.Name),
	})
}
