package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"presupuesto/internal/models"
	"presupuesto/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Nombre      string `json:"nombre" binding:"required,min=1,max=100"`
	Descripcion string `json:"descripcion" binding:"max=255"`
	Icono       string `json:"icono" binding:"max=50"`
	Color       string `json:"color" binding:"omitempty,hex_color"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Icono       string `json:"icono"`
	Color       string `json:"color"`
}

func categoryPayload(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Nombre:      cat.Name,
		Descripcion: cat.Description,
		Icono:       cat.Icon,
		Color:       cat.Color,
	}
}

// CreateCategory handles the creation of a new category.
// @Summary     Create a category
// @Description Create a new expense category for the authenticated user
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Category already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Nombre, req.Descripcion, req.Icono, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Nombre})

	c.JSON(http.StatusCreated, gin.H{"categoria": categoryPayload(category)})
}

// GetCategories handles listing the authenticated user's categories.
// @Summary     Get categories
// @Description Get the authenticated user's active categories, ordered by name
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []CategoryResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		payload = append(payload, categoryPayload(&categories[i]))
	}

	c.JSON(http.StatusOK, gin.H{"categorias": payload})
}
