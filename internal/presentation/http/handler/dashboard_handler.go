package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the figures of the active business. ?days= sets the
// daily revenue window.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var days int
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "days must be a number")
			return
		}
		days = n
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
