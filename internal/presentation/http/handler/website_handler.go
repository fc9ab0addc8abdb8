package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/bizhub-api/pkg/apperror"
)

const notFoundPage = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>Not found</title></head>` +
	`<body><h1>Site not found</h1></body></html>`

// WebsiteHandler handles the business website and its public pages
type WebsiteHandler struct {
	websiteService *service.WebsiteService
}

// NewWebsiteHandler creates a new website handler
func NewWebsiteHandler(websiteService *service.WebsiteService) *WebsiteHandler {
	return &WebsiteHandler{websiteService: websiteService}
}

// Templates lists the available site templates
func (h *WebsiteHandler) Templates(c *gin.Context) {
	response.OK(c, "Website templates retrieved successfully", h.websiteService.Templates())
}

// Get returns the site of the active business
func (h *WebsiteHandler) Get(c *gin.Context) {
	site, err := h.websiteService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Website retrieved successfully", site)
}

// Update edits the template, slug, title or content of the site
func (h *WebsiteHandler) Update(c *gin.Context) {
	var req request.UpdateWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	site, err := h.websiteService.Update(c.Request.Context(), &service.UpdateWebsiteInput{
		TemplateID: req.TemplateID,
		Slug:       req.Slug,
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Website updated successfully", site)
}

// Publish puts the site online
func (h *WebsiteHandler) Publish(c *gin.Context) {
	site, err := h.websiteService.Publish(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Website published successfully", site)
}

// Unpublish takes the site offline
func (h *WebsiteHandler) Unpublish(c *gin.Context) {
	site, err := h.websiteService.Unpublish(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Website unpublished successfully", site)
}

// Public renders a published site as HTML
func (h *WebsiteHandler) Public(c *gin.Context) {
	page, err := h.websiteService.RenderPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if apperror.HasCode(err, http.StatusNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
			return
		}
		log.Printf("Error: rendering site %q: %v", c.Param("slug"), err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte("Internal Server Error"))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
