package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	profileService  services.ProfileServicer
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(profileService services.ProfileServicer, categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{profileService: profileService, categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=100"`
	Type  models.CategoryType `json:"type" binding:"required,category_type"`
	Color string              `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Color    string `json:"color" binding:"omitempty,hex_color"`
	IsActive *bool  `json:"is_active"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Type     models.CategoryType `json:"type"`
	Color    string              `json:"color"`
	IsActive bool                `json:"is_active"`
}

func toCategoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{ID: cat.ID, Name: cat.Name, Type: cat.Type, Color: cat.Color, IsActive: cat.IsActive}
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(scope, req.Name, req.Type, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories lists the household's categories
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       active query bool false "Only active categories"
// @Success     200 {array} CategoryResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetCategories(scope, c.Query("active") == "true")
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		response = append(response, toCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateCategory renames, recolors and/or toggles a category
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(scope, categoryID, req.Name, req.Color, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory removes a category without expense history
// @Summary     Delete a category
// @Tags        categories
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     204 "Category deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category has expenses"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(scope, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
