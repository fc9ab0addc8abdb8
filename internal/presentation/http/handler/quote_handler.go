package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	params := &repository.QuoteFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := enum.ParseQuoteStatus(raw)
		if !ok {
			response.BadRequest(c, "Invalid quote status")
			return
		}
		params.Status = &status
	}

	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}
	params.CustomerID = customerID

	result, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Quotes retrieved successfully", result)
}

// Create handles creating a quote
func (h *QuoteHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, ok := bindDate(c, "date", req.Date)
	if !ok {
		return
	}
	validUntil, ok := bindDate(c, "valid_until", req.ValidUntil)
	if !ok {
		return
	}

	input := &service.CreateQuoteInput{
		UserID:      userID,
		CustomerID:  req.CustomerID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ValidUntil:  validUntil,
		Status:      req.Status,
		Items:       request.LineItems(req.Items),
		TaxRate:     req.TaxRate,
		Notes:       req.Notes,
	}
	if date != nil {
		input.Date = *date
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Get handles getting a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Update handles editing a quote
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "quote")
	if !ok {
		return
	}

	var req request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, ok := bindDate(c, "date", req.Date)
	if !ok {
		return
	}
	validUntil, ok := bindDate(c, "valid_until", req.ValidUntil)
	if !ok {
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), &service.UpdateQuoteInput{
		ID:          id,
		CustomerID:  req.CustomerID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Date:        date,
		ValidUntil:  validUntil,
		Items:       request.LineItems(req.Items),
		TaxRate:     req.TaxRate,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// UpdateStatus handles moving a quote to another status
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "quote")
	if !ok {
		return
	}

	var req request.QuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Delete handles deleting a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "quote")
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export streams a quote as a pdf, xlsx or txt attachment
func (h *QuoteHandler) Export(c *gin.Context) {
	id, ok := paramID(c, "id", "quote")
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "pdf"))
	file, err := h.quoteService.ExportQuote(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Convert turns a quote into a sale
func (h *QuoteHandler) Convert(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "quote")
	if !ok {
		return
	}

	sale, err := h.quoteService.ConvertToSale(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted to sale successfully", sale)
}
