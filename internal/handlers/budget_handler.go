package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
	"presupuesto/internal/services"
)

// BudgetHandler handles monthly template and budget item requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateTemplateRequest represents the request payload for creating a monthly template.
type CreateTemplateRequest struct {
	Periodo string `json:"periodo" binding:"required,month_period"`
}

// CreateBudgetItemRequest represents the request payload for creating a budget item.
// Classification and control arrive as their display names and are resolved
// server-side; unknown names reject the whole request.
type CreateBudgetItemRequest struct {
	PlantillaID   uint    `json:"plantilla_id" binding:"required"`
	CategoriaID   uint    `json:"categoria_id" binding:"required"`
	Nombre        string  `json:"nombre" binding:"required,min=1,max=100"`
	Fecha         string  `json:"fecha" binding:"omitempty,iso_date"`
	Presupuestado float64 `json:"presupuestado" binding:"omitempty,gte=0"`
	Real          float64 `json:"real" binding:"omitempty,gte=0"`
	Clasificacion string  `json:"clasificacion" binding:"omitempty,classification"`
	Control       string  `json:"control" binding:"omitempty,control_type"`
}

// UpdateBudgetItemRequest represents a partial budget item update. Omitted
// fields keep their stored values.
type UpdateBudgetItemRequest struct {
	Nombre        *string  `json:"nombre" binding:"omitempty,min=1,max=100"`
	Fecha         *string  `json:"fecha" binding:"omitempty,iso_date"`
	Presupuestado *float64 `json:"presupuestado" binding:"omitempty,gte=0"`
	Real          *float64 `json:"real" binding:"omitempty,gte=0"`
	CategoriaID   *uint    `json:"categoria_id" binding:"omitempty"`
	Clasificacion *string  `json:"clasificacion" binding:"omitempty,classification"`
	Control       *string  `json:"control" binding:"omitempty,control_type"`
}

// BudgetItemResponse represents a budget item in API responses.
type BudgetItemResponse struct {
	ID            uint    `json:"id"`
	PlantillaID   uint    `json:"plantilla_id"`
	CategoriaID   uint    `json:"categoria_id"`
	Categoria     string  `json:"categoria"`
	Nombre        string  `json:"nombre"`
	Fecha         string  `json:"fecha"`
	Presupuestado float64 `json:"presupuestado"`
	Real          float64 `json:"real"`
	Clasificacion string  `json:"clasificacion"`
	Control       string  `json:"control"`
}

func budgetItemPayload(item *models.BudgetItem) BudgetItemResponse {
	return BudgetItemResponse{
		ID:            item.ID,
		PlantillaID:   item.TemplateID,
		CategoriaID:   item.CategoryID,
		Categoria:     item.Category.Name,
		Nombre:        item.Name,
		Fecha:         item.DueDate,
		Presupuestado: item.Budgeted,
		Real:          item.Actual,
		Clasificacion: item.Classification.Name,
		Control:       item.Control.Name,
	}
}

// CreateTemplate handles the creation of a monthly template.
// @Summary     Create a monthly template
// @Description Create a budget template for a YYYY-MM period
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTemplateRequest true "Template period"
// @Success     201 {object} models.MonthlyTemplate "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Template already exists for period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates [post]
func (h *BudgetHandler) CreateTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	template, err := h.budgetService.CreateTemplate(userID, req.Periodo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TEMPLATE", "template", template.ID, c.ClientIP(),
		map[string]interface{}{"period": req.Periodo})

	c.JSON(http.StatusCreated, gin.H{"plantilla": gin.H{
		"id":      template.ID,
		"periodo": template.Period,
	}})
}

// GetBudget handles listing the budget items for a period, with aggregates.
// @Summary     Get budget for a period
// @Description Get the budget items and summary for the given YYYY-MM period
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       periodo query string true "Period in YYYY-MM format"
// @Success     200 {object} services.TemplateSummary "Items and summary"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No template for period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	periodo := c.Query("periodo")
	if periodo == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "periodo query parameter is required"))
		return
	}

	items, summary, err := h.budgetService.GetTemplateItems(userID, periodo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload := make([]BudgetItemResponse, 0, len(items))
	for i := range items {
		payload = append(payload, budgetItemPayload(&items[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"periodo": periodo,
		"items":   payload,
		"resumen": summary,
	})
}

// CreateBudgetItem handles adding a budget item to a template.
// @Summary     Create a budget item
// @Description Add a budget line to a monthly template
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetItemRequest true "Budget item details"
// @Success     201 {object} BudgetItemResponse "Budget item created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown lookup name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget [post]
func (h *BudgetHandler) CreateBudgetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	item, err := h.budgetService.CreateItem(userID, services.CreateBudgetItemInput{
		TemplateID:     req.PlantillaID,
		CategoryID:     req.CategoriaID,
		Name:           req.Nombre,
		DueDate:        req.Fecha,
		Budgeted:       req.Presupuestado,
		Actual:         req.Real,
		Classification: req.Clasificacion,
		Control:        req.Control,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET_ITEM", "budget_item", item.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Nombre, "budgeted": req.Presupuestado})

	c.JSON(http.StatusCreated, gin.H{"item": budgetItemPayload(item)})
}

// UpdateBudgetItem handles a partial update of a budget item.
// @Summary     Update a budget item
// @Description Patch a budget item; omitted fields keep their stored values
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Budget item ID"
// @Param       request body UpdateBudgetItemRequest true "Fields to change"
// @Success     200 {object} BudgetItemResponse "Updated budget item"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown lookup name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{id} [patch]
func (h *BudgetHandler) UpdateBudgetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	item, err := h.budgetService.UpdateItem(userID, itemID, services.BudgetItemPatch{
		Name:           req.Nombre,
		DueDate:        req.Fecha,
		Budgeted:       req.Presupuestado,
		Actual:         req.Real,
		CategoryID:     req.CategoriaID,
		Classification: req.Clasificacion,
		Control:        req.Control,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET_ITEM", "budget_item", itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"item": budgetItemPayload(item)})
}

// DeleteBudgetItem handles deleting a budget item.
// @Summary     Delete a budget item
// @Description Delete a budget item by ID
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget item ID"
// @Success     200 {object} MessageResponse "Budget item deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{id} [delete]
func (h *BudgetHandler) DeleteBudgetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteItem(userID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET_ITEM", "budget_item", itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget item deleted successfully"})
}

// MessageResponse represents a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
