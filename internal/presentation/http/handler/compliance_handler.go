package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/bizhub-api/internal/presentation/http/middleware"
)

// ComplianceHandler handles compliance documents of the active business
type ComplianceHandler struct {
	complianceService *service.ComplianceService
	maxUpload         int64
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(complianceService *service.ComplianceService, maxUpload int64) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService, maxUpload: maxUpload}
}

// Catalog lists the documents required for ?business_type=, defaulting to
// the type of the active business
func (h *ComplianceHandler) Catalog(c *gin.Context) {
	bt := enum.BusinessType(c.Query("business_type"))
	if bt == "" {
		if business := middleware.GetBusiness(c); business != nil {
			bt = business.Type
		}
	}

	templates, err := h.complianceService.Catalog(bt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compliance catalog retrieved successfully", templates)
}

// ListDocuments lists every document slot with its current status
func (h *ComplianceHandler) ListDocuments(c *gin.Context) {
	docs, err := h.complianceService.ListDocuments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compliance documents retrieved successfully", docs)
}

// Summary returns document counts by status
func (h *ComplianceHandler) Summary(c *gin.Context) {
	summary, err := h.complianceService.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compliance summary retrieved successfully", summary)
}

// Upload stores a multipart "file" for a slot with an optional expiry_date
func (h *ComplianceHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		response.ErrorWithCode(c, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	expiryRaw := c.PostForm("expiry_date")
	expiry, ok := bindDate(c, "expiry_date", &expiryRaw)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.complianceService.Upload(c.Request.Context(), &service.UploadInput{
		Slot:       c.Param("slot"),
		FileName:   fileHeader.Filename,
		File:       file,
		ExpiryDate: expiry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document uploaded successfully", doc)
}

// SetExpiry sets or clears the expiry date of a slot
func (h *ComplianceHandler) SetExpiry(c *gin.Context) {
	var req request.ExpiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expiry, ok := bindDate(c, "expiry_date", req.ExpiryDate)
	if !ok {
		return
	}

	doc, err := h.complianceService.SetExpiry(c.Request.Context(), c.Param("slot"), expiry)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document expiry updated successfully", doc)
}

// CreateCustom adds a custom document slot
func (h *ComplianceHandler) CreateCustom(c *gin.Context) {
	var req request.CustomDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expiry, ok := bindDate(c, "expiry_date", req.ExpiryDate)
	if !ok {
		return
	}

	doc, err := h.complianceService.CreateCustomDocument(c.Request.Context(), &service.CustomDocumentInput{
		Name:        req.Name,
		Description: req.Description,
		ExpiryDate:  expiry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Custom document created successfully", doc)
}

// FileURL returns a short-lived signed link to the file of a slot
func (h *ComplianceHandler) FileURL(c *gin.Context) {
	signed, err := h.complianceService.FileURL(c.Request.Context(), c.Param("slot"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "File URL generated successfully", signed)
}
