package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"presupuesto/internal/cufe"
	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
	"presupuesto/internal/pagination"
)

// invoiceService handles electronic invoice business logic.
type invoiceService struct {
	db *gorm.DB
}

// NewInvoiceService creates a new InvoiceServicer.
func NewInvoiceService(db *gorm.DB) InvoiceServicer {
	return &invoiceService{db: db}
}

// CreateInvoice registers an electronic invoice. The CUFE is normalized
// before the uniqueness check and the write, so inputs differing only by
// case or whitespace collide with the stored record. The pre-check
// short-circuits with a conflict; a storage-level duplicate-key violation
// maps to the same conflict if the check-then-insert races.
func (s *invoiceService) CreateInvoice(userID uint, input CreateInvoiceInput) (*models.ElectronicInvoice, error) {
	code := cufe.Normalize(input.CUFE)
	if ok, reason := cufe.Validate(code); !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCUFE, reason)
	}

	var count int64
	if err := s.db.Model(&models.ElectronicInvoice{}).
		Where("user_id = ? AND cufe = ?", userID, code).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCUFE
	}

	var extracted string
	if input.ExtractedData != nil {
		data, err := json.Marshal(input.ExtractedData)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		extracted = string(data)
	}

	invoice := &models.ElectronicInvoice{
		UserID:         userID,
		CUFE:           code,
		SupplierName:   input.SupplierName,
		SupplierTaxID:  input.SupplierTaxID,
		InvoiceDate:    input.InvoiceDate,
		TotalAmount:    input.TotalAmount,
		ExtractedData:  extracted,
		SourceDocument: input.SourceDocument,
	}

	if err := s.db.Create(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCUFE
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return invoice, nil
}

// ListInvoices returns a page of the user's invoices matching the filter,
// plus an aggregate summary over the whole filtered set.
func (s *invoiceService) ListInvoices(userID uint, filter InvoiceFilter, page pagination.PageRequest) (*pagination.PageResponse[models.ElectronicInvoice], *InvoiceSummary, error) {
	page.Defaults()

	scoped := func() *gorm.DB {
		q := s.db.Model(&models.ElectronicInvoice{}).Where("user_id = ?", userID)
		if filter.FromDate != nil {
			q = q.Where("invoice_date >= ?", *filter.FromDate)
		}
		if filter.ToDate != nil {
			q = q.Where("invoice_date <= ?", *filter.ToDate)
		}
		if filter.Supplier != nil {
			q = q.Where("supplier_name LIKE ?", "%"+*filter.Supplier+"%")
		}
		return q
	}

	summary := &InvoiceSummary{}
	if err := scoped().Count(&summary.Count).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := scoped().Select("COALESCE(SUM(total_amount), 0)").Scan(&summary.TotalAmount).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var invoices []models.ElectronicInvoice
	if err := scoped().
		Order("invoice_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&invoices).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(invoices, page.Limit, page.Offset, summary.Count)
	return &result, summary, nil
}
