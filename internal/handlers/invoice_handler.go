package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"presupuesto/internal/cufe"
	apperrors "presupuesto/internal/errors"
	"presupuesto/internal/models"
	"presupuesto/internal/pagination"
	"presupuesto/internal/services"
)

// InvoiceHandler handles electronic invoice requests.
type InvoiceHandler struct {
	invoiceService services.InvoiceServicer
	auditService   services.AuditServicer
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService services.InvoiceServicer, auditService services.AuditServicer) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, auditService: auditService}
}

// CreateInvoiceRequest represents the request payload for registering an
// electronic invoice. The CUFE may arrive with incidental whitespace or mixed
// case; it is normalized before validation and storage.
type CreateInvoiceRequest struct {
	CUFE            string                 `json:"cufe" binding:"required"`
	Proveedor       string                 `json:"proveedor" binding:"max=200"`
	NIT             string                 `json:"nit" binding:"max=20"`
	Fecha           string                 `json:"fecha" binding:"omitempty,iso_date"`
	Total           float64                `json:"total" binding:"omitempty,gte=0"`
	DatosExtraidos  map[string]interface{} `json:"datos_extraidos"`
	DocumentoOrigen string                 `json:"documento_origen" binding:"max=255"`
}

// ExtractCUFERequest represents the payload for CUFE extraction from scanned
// QR content.
type ExtractCUFERequest struct {
	Contenido string `json:"contenido" binding:"required"`
}

// InvoiceResponse represents an electronic invoice in API responses.
type InvoiceResponse struct {
	ID              uint    `json:"id"`
	CUFE            string  `json:"cufe"`
	Proveedor       string  `json:"proveedor"`
	NIT             string  `json:"nit"`
	Fecha           string  `json:"fecha"`
	Total           float64 `json:"total"`
	DatosExtraidos  string  `json:"datos_extraidos,omitempty"`
	DocumentoOrigen string  `json:"documento_origen,omitempty"`
}

func invoicePayload(inv *models.ElectronicInvoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		CUFE:            inv.CUFE,
		Proveedor:       inv.SupplierName,
		NIT:             inv.SupplierTaxID,
		Fecha:           inv.InvoiceDate,
		Total:           inv.TotalAmount,
		DatosExtraidos:  inv.ExtractedData,
		DocumentoOrigen: inv.SourceDocument,
	}
}

// CreateInvoice handles registering an electronic invoice.
// @Summary     Register an electronic invoice
// @Description Register an invoice by its CUFE; duplicates per user are rejected
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvoiceRequest true "Invoice details"
// @Success     201 {object} InvoiceResponse "Invoice registered"
// @Failure     400 {object} ErrorResponse "Invalid CUFE or input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "CUFE already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /electronic-invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(userID, services.CreateInvoiceInput{
		CUFE:           req.CUFE,
		SupplierName:   req.Proveedor,
		SupplierTaxID:  req.NIT,
		InvoiceDate:    req.Fecha,
		TotalAmount:    req.Total,
		ExtractedData:  req.DatosExtraidos,
		SourceDocument: req.DocumentoOrigen,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVOICE", "electronic_invoice", invoice.ID, c.ClientIP(),
		map[string]interface{}{"supplier": req.Proveedor, "total": req.Total})

	c.JSON(http.StatusCreated, gin.H{"factura": invoicePayload(invoice)})
}

// GetInvoices handles listing electronic invoices with optional filters.
// @Summary     Get electronic invoices
// @Description Get a paginated list of invoices with count and total over the whole filtered set
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       desde     query string false "Earliest invoice date (YYYY-MM-DD)"
// @Param       hasta     query string false "Latest invoice date (YYYY-MM-DD)"
// @Param       proveedor query string false "Supplier name substring"
// @Param       limit     query int    false "Page size (default 20, max 100)"
// @Param       offset    query int    false "Rows to skip (default 0)"
// @Success     200 {object} pagination.PageResponse[InvoiceResponse] "Paginated invoices"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /electronic-invoices [get]
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
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

	var filter services.InvoiceFilter
	if v := c.Query("desde"); v != "" {
		filter.FromDate = &v
	}
	if v := c.Query("hasta"); v != "" {
		filter.ToDate = &v
	}
	if v := c.Query("proveedor"); v != "" {
		filter.Supplier = &v
	}

	result, summary, err := h.invoiceService.ListInvoices(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload := make([]InvoiceResponse, 0, len(result.Data))
	for i := range result.Data {
		payload = append(payload, invoicePayload(&result.Data[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"facturas":    payload,
		"resumen":     summary,
		"limit":       result.Limit,
		"offset":      result.Offset,
		"total_items": result.TotalItems,
	})
}

// ExtractCUFE handles extracting a CUFE from scanned QR content.
// @Summary     Extract CUFE from QR content
// @Description Scan decoded QR text for a CUFE and report whether it looks like a DIAN invoice QR
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExtractCUFERequest true "Decoded QR content"
// @Success     200 {object} MessageResponse "Extraction result"
// @Failure     400 {object} ErrorResponse "Invalid input or no CUFE found"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /electronic-invoices/extract-cufe [post]
func (h *InvoiceHandler) ExtractCUFE(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req ExtractCUFERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	code, found := cufe.ExtractFromQRPayload(req.Contenido)
	if !found {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidCUFE, "No CUFE found in the provided content"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cufe":            code,
		"es_factura_dian": cufe.LooksLikeDIANInvoiceQR(req.Contenido),
	})
}
