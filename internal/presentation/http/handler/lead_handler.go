package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService *service.LeadService
	maxUpload   int64
}

// NewLeadHandler creates a new lead handler. Import files larger than
// maxUpload bytes are rejected.
func NewLeadHandler(leadService *service.LeadService, maxUpload int64) *LeadHandler {
	return &LeadHandler{leadService: leadService, maxUpload: maxUpload}
}

// List handles listing leads with page or cursor pagination
func (h *LeadHandler) List(c *gin.Context) {
	search := c.Query("search")
	var status *enum.LeadStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := enum.ParseLeadStatus(raw)
		if !ok {
			response.BadRequest(c, "Invalid lead status")
			return
		}
		status = &parsed
	}

	if cursor, ok := cursorParams(c); ok {
		result, err := h.leadService.ListLeadsWithCursor(c.Request.Context(), &repository.LeadCursorFilterParams{
			Cursor: cursor,
			Search: search,
			Status: status,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Leads retrieved successfully", result)
		return
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), &repository.LeadFilterParams{
		Pagination: pageParams(c),
		Search:     search,
		Status:     status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Leads retrieved successfully", result)
}

// Create handles creating a lead
func (h *LeadHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), &service.LeadInput{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Source:  req.Source,
		Status:  req.Status,
		Value:   pricing.Coerce(req.Value),
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead created successfully", lead)
}

// Get handles getting a single lead
func (h *LeadHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "lead")
	if !ok {
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead retrieved successfully", lead)
}

// Update handles updating a lead
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "lead")
	if !ok {
		return
	}

	var req request.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var value *decimal.Decimal
	if req.Value != nil {
		v := pricing.Coerce(req.Value)
		value = &v
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), &service.UpdateLeadInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Source:  req.Source,
		Status:  req.Status,
		Value:   value,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead updated successfully", lead)
}

// Delete handles deleting a lead
func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "lead")
	if !ok {
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Convert turns a lead into a customer
func (h *LeadHandler) Convert(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "lead")
	if !ok {
		return
	}

	lead, err := h.leadService.ConvertLead(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead converted successfully", lead)
}

// Import handles a multipart xlsx upload of leads
func (h *LeadHandler) Import(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		response.ErrorWithCode(c, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	rows, err := service.ParseLeadSheet(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.leadService.ImportLeads(c.Request.Context(), userID, rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead import completed", result)
}
