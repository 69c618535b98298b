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

// CategoryHandler is the admin CRUD over product categories.
type CategoryHandler struct {
	categories *repository.CategoryRepository
	audit      *audit.Recorder
}

func NewCategoryHandler(categories *repository.CategoryRepository, recorder *audit.Recorder) *CategoryHandler {
	return &CategoryHandler{categories: categories, audit: recorder}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	filter := repository.CategoryFilter{
		Search: c.Query("search"),
		Page:   repository.Page{Number: queryInt(c, "page")},
	}

	categories, total, err := h.categories.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"summary":    gin.H{"total": total},
	})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input CategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	category := models.Category{Name: input.Name, Description: input.Description}
	if err := h.categories.Create(&category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Category created", models.LevelSuccess, "tags")
	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Category '%s' created", category.Name),
		"category": category,
	})
}

func (h *CategoryHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(id)
	if err != nil {
		notFoundOr(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(id)
	if err != nil {
		notFoundOr(c, err, "Category")
		return
	}

	var input CategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		bindingError(c, err)
		return
	}

	category.Name = input.Name
	category.Description = input.Description

	if err := h.categories.Update(category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	h.audit.Record(middleware.UserID(c), "Category updated", models.LevelInfo, "edit")
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Category '%s' updated", category.Name),
		"category": category,
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	category, err := h.categories.Delete(id)
	if err != nil {
		notFoundOr(c, err, "Category")
		return
	}

	h.audit.Record(middleware.UserID(c), "Category deleted", models.LevelDanger, "trash")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Category '%s' deleted", category.Name),
	})
}
