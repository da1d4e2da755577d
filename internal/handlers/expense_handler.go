package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
	"presupuesto/internal/pagination"
	"presupuesto/internal/period"
	"presupuesto/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for recording an expense.
type CreateExpenseRequest struct {
	Nombre    string  `json:"nombre" binding:"required,min=1,max=200"`
	Monto     float64 `json:"monto" binding:"omitempty,gte=0"`
	Fecha     string  `json:"fecha" binding:"required,iso_date"`
	Categoria string  `json:"categoria" binding:"max=100"`
	Cuenta    string  `json:"cuenta" binding:"max=100"`
	Lugar     string  `json:"lugar" binding:"max=200"`
}

// UpdateExpenseRequest represents a partial expense update. Omitted fields
// keep their stored values.
type UpdateExpenseRequest struct {
	Nombre    *string  `json:"nombre" binding:"omitempty,min=1,max=200"`
	Monto     *float64 `json:"monto" binding:"omitempty,gte=0"`
	Fecha     *string  `json:"fecha" binding:"omitempty,iso_date"`
	Categoria *string  `json:"categoria" binding:"omitempty,max=100"`
	Cuenta    *string  `json:"cuenta" binding:"omitempty,max=100"`
	Lugar     *string  `json:"lugar" binding:"omitempty,max=200"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        uint    `json:"id"`
	Nombre    string  `json:"nombre"`
	Monto     float64 `json:"monto"`
	Fecha     string  `json:"fecha"`
	Periodo   string  `json:"periodo"`
	Categoria string  `json:"categoria"`
	Cuenta    string  `json:"cuenta"`
	Lugar     string  `json:"lugar"`
}

func expensePayload(e *models.Transaction) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Nombre:    e.Name,
		Monto:     e.Amount,
		Fecha:     e.TransactionDate,
		Periodo:   e.MonthYear,
		Categoria: e.Category,
		Cuenta:    e.Account,
		Lugar:     e.Place,
	}
}

// CreateExpense handles recording a new expense.
// @Summary     Record an expense
// @Description Record an expense; its month bucket is derived from the date
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, services.CreateExpenseInput{
		Name:            req.Nombre,
		Amount:          req.Monto,
		TransactionDate: req.Fecha,
		Category:        req.Categoria,
		Account:         req.Cuenta,
		Place:           req.Lugar,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Nombre, "amount": req.Monto})

	c.JSON(http.StatusCreated, gin.H{"gasto": expensePayload(expense)})
}

// GetExpenses handles listing expenses, optionally filtered to one month.
// @Summary     Get expenses
// @Description Get a paginated list of expenses with the total spent in the filtered set
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       periodo query string false "Filter by YYYY-MM period"
// @Param       limit   query int    false "Page size (default 20, max 100)"
// @Param       offset  query int    false "Rows to skip (default 0)"
// @Success     200 {object} pagination.PageResponse[ExpenseResponse] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	periodo := c.Query("periodo")
	if periodo != "" && !period.IsValid(periodo) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "periodo must be in YYYY-MM format"))
		return
	}

	result, total, err := h.expenseService.GetUserExpenses(userID, periodo, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload := make([]ExpenseResponse, 0, len(result.Data))
	for i := range result.Data {
		payload = append(payload, expensePayload(&result.Data[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"gastos":      payload,
		"total_mes":   total,
		"limit":       result.Limit,
		"offset":      result.Offset,
		"total_items": result.TotalItems,
	})
}

// UpdateExpense handles a partial update of an expense.
// @Summary     Update an expense
// @Description Patch an expense; a date change moves it to the matching month bucket
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [patch]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, services.ExpensePatch{
		Name:            req.Nombre,
		Amount:          req.Monto,
		TransactionDate: req.Fecha,
		Category:        req.Categoria,
		Account:         req.Cuenta,
		Place:           req.Lugar,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"gasto": expensePayload(expense)})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete an expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
