package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-pos-backoffice/internal/audit"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/models"
	"go-pos-backoffice/internal/repository"
)

// ProductHandler is the admin CRUD over the product catalogue.
type ProductHandler struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	audit      *audit.Recorder
}

func NewProductHandler(products *repository.ProductRepository, categories *repository.CategoryRepository, recorder *audit.Recorder) *ProductHandler {
	return &ProductHandler{products: products, categories: categories, audit: recorder}
}

type ProductRequest struct {
	Name       string          `json:"name" binding:"required"`
	CategoryID uint            `json:"category_id" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Status     string          `json:"status" binding:"required,oneof=active out_of_stock inactive"`
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: uint(queryInt(c, "category")),
		Status:     statusIn(c.Query("status"), models.ProductActive, models.ProductOutOfStock, models.ProductInactive),
		Page:       repository.Page{Number: queryInt(c, "page")},
	}

	products, summary, err := h.products.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"summary":  summary,
	})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	// The category must exist before we hang a product off it.
	if _, err := h.categories.Get(input.CategoryID); err != nil {
		notFoundOr(c, err, "Category")
		return
	}

	product := models.Product{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		UnitPrice:  input.UnitPrice,
		Status:     input.Status,
	}
	if err := h.products.Create(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Product added", models.LevelSuccess, "plus")
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Product '%s' created", product.Name),
		"product": product,
	})
}

func (h *ProductHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(id)
	if err != nil {
		notFoundOr(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(id)
	if err != nil {
		notFoundOr(c, err, "Product")
		return
	}

	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	if _, err := h.categories.Get(input.CategoryID); err != nil {
		notFoundOr(c, err, "Category")
		return
	}

	product.Name = input.Name
	product.CategoryID = input.CategoryID
	product.UnitPrice = input.UnitPrice
	product.Status = input.Status

	if err := h.products.Update(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Product updated", models.LevelInfo, "edit")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Product '%s' updated", product.Name),
		"product": product,
	})
}

// Delete removes the product together with its sale line items. The
// cascade is a single transaction; a failure aborts the whole delete.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := h.products.Delete(id)
	if err != nil {
		notFoundOr(c, err, "Product")
		return
	}

	h.audit.Record(middleware.UserID(c), "Product and associated sale items deleted", models.LevelDanger, "trash")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Product '%s' and its associated sale items were deleted", product.Name),
	})
}
