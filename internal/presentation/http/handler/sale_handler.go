package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := enum.ParseSaleStatus(raw)
		if !ok {
			response.BadRequest(c, "Invalid sale status")
			return
		}
		params.Status = &status
	}

	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}
	params.CustomerID = customerID

	start := c.Query("start_date")
	if params.StartDate, ok = bindDate(c, "start_date", &start); !ok {
		return
	}
	end := c.Query("end_date")
	if params.EndDate, ok = bindDate(c, "end_date", &end); !ok {
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", result)
}

// Create handles recording a sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	saleDate, ok := bindDate(c, "sale_date", req.SaleDate)
	if !ok {
		return
	}

	input := &service.CreateSaleInput{
		UserID:       userID,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Status:       req.Status,
		Items:        request.LineItems(req.Items),
		TaxRate:      req.TaxRate,
		PaymentType:  req.PaymentType,
		Notes:        req.Notes,
	}
	if saleDate != nil {
		input.SaleDate = *saleDate
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Update handles editing a sale
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	var req request.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	saleDate, ok := bindDate(c, "sale_date", req.SaleDate)
	if !ok {
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), &service.UpdateSaleInput{
		ID:           id,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		SaleDate:     saleDate,
		Items:        request.LineItems(req.Items),
		TaxRate:      req.TaxRate,
		PaymentType:  req.PaymentType,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// UpdateStatus handles moving a sale to another status
func (h *SaleHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	var req request.SaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdateSaleStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale status updated successfully", sale)
}

// Delete handles deleting a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
