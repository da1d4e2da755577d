package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
	"presupuesto/internal/pagination"
	"presupuesto/internal/period"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a new expense. The month bucket is always derived
// from the transaction date, never accepted from the client.
func (s *expenseService) CreateExpense(userID uint, input CreateExpenseInput) (*models.Transaction, error) {
	expense := &models.Transaction{
		UserID:          userID,
		Name:            input.Name,
		Amount:          input.Amount,
		TransactionDate: input.TransactionDate,
		MonthYear:       period.Bucket(input.TransactionDate),
		Category:        input.Category,
		Account:         input.Account,
		Place:           input.Place,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetUserExpenses returns a page of the user's expenses, optionally filtered
// to one YYYY-MM bucket, plus the total amount across the filtered set. The
// total is recomputed from the store on every read.
func (s *expenseService) GetUserExpenses(userID uint, monthYear string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], float64, error) {
	page.Defaults()

	scoped := func() *gorm.DB {
		q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
		if monthYear != "" {
			q = q.Where("month_year = ?", monthYear)
		}
		return q
	}

	var totalItems int64
	if err := scoped().Count(&totalItems).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalAmount float64
	if err := scoped().Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Transaction
	if err := scoped().
		Order("transaction_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Limit, page.Offset, totalItems)
	return &result, totalAmount, nil
}

// getExpense loads an expense scoped to the owner.
func (s *expenseService) getExpense(userID, expenseID uint) (*models.Transaction, error) {
	var expense models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// buildExpenseUpdates translates a patch into a column update map. Only
// fields explicitly present in the patch appear. Changing the transaction
// date re-derives the month bucket in the same mutation.
func buildExpenseUpdates(patch ExpensePatch) map[string]interface{} {
	updates := make(map[string]interface{})

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.TransactionDate != nil {
		updates["transaction_date"] = *patch.TransactionDate
		updates["month_year"] = period.Bucket(*patch.TransactionDate)
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Account != nil {
		updates["account"] = *patch.Account
	}
	if patch.Place != nil {
		updates["place"] = *patch.Place
	}

	return updates
}

// UpdateExpense applies a partial patch to an expense owned by the user.
func (s *expenseService) UpdateExpense(userID, expenseID uint, patch ExpensePatch) (*models.Transaction, error) {
	expense, err := s.getExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := buildExpenseUpdates(patch)
	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.getExpense(userID, expenseID)
}

// DeleteExpense soft-deletes an expense owned by the user. Deleting an
// absent row, or one owned by another user, reports not-found.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}
