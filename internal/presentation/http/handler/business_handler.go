package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

// BusinessHandler handles onboarding, the business profile, members and
// settings
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func profileInput(req *request.BusinessProfileRequest) *service.BusinessProfileInput {
	return &service.BusinessProfileInput{
		Name:           req.Name,
		Type:           req.Type,
		RegistrationNo: req.RegistrationNo,
		VATNo:          req.VATNo,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
	}
}

// GetOnboarding reports whether the user has a business yet
func (h *BusinessHandler) GetOnboarding(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.businessService.GetOnboarding(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Onboarding status retrieved successfully", status)
}

// Onboard creates the user's business
func (h *BusinessHandler) Onboard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.Onboard(c.Request.Context(), userID, profileInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Onboarding completed successfully", business)
}

// Get returns the active business
func (h *BusinessHandler) Get(c *gin.Context) {
	business, err := h.businessService.GetBusiness(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Business retrieved successfully", business)
}

// Update edits the business profile
func (h *BusinessHandler) Update(c *gin.Context) {
	var req request.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), profileInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business updated successfully", business)
}

// ListMembers lists the members of the business
func (h *BusinessHandler) ListMembers(c *gin.Context) {
	members, err := h.businessService.ListMembers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Members retrieved successfully", members)
}

// AddMember adds an existing user to the business
func (h *BusinessHandler) AddMember(c *gin.Context) {
	var req request.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.businessService.AddMember(c.Request.Context(), &service.AddMemberInput{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", member)
}

// UpdateMemberRole changes a member's role
func (h *BusinessHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := paramID(c, "user_id", "user")
	if !ok {
		return
	}

	var req request.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.businessService.UpdateMemberRole(c.Request.Context(), userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// RemoveMember removes a member from the business
func (h *BusinessHandler) RemoveMember(c *gin.Context) {
	userID, ok := paramID(c, "user_id", "user")
	if !ok {
		return
	}

	if err := h.businessService.RemoveMember(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetSettings returns the business settings
func (h *BusinessHandler) GetSettings(c *gin.Context) {
	settings, err := h.businessService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the business settings
func (h *BusinessHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.businessService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		Currency:      req.Currency,
		Timezone:      req.Timezone,
		TaxRate:       req.TaxRate,
		TaxLabel:      req.TaxLabel,
		InvoicePrefix: req.InvoicePrefix,
		QuotePrefix:   req.QuotePrefix,
		EmailAlerts:   req.EmailAlerts,
		SMSAlerts:     req.SMSAlerts,
		AlertEmail:    req.AlertEmail,
		AlertPhone:    req.AlertPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
