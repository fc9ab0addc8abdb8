package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/bizhub-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// dateLayout is the wire format of calendar dates
const dateLayout = "2006-01-02"

// parseDate parses an optional YYYY-MM-DD value; nil or empty yields nil
func parseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// bindDate parses a date field and answers 400 when it is malformed
func bindDate(c *gin.Context, field string, value *string) (*time.Time, bool) {
	t, err := parseDate(value)
	if err != nil {
		response.BadRequest(c, "Invalid "+field+" format. Use YYYY-MM-DD")
		return nil, false
	}
	return t, true
}

// paramID parses a UUID path parameter and answers 400 when it is malformed
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// requireUser returns the authenticated user ID or answers 401
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return uuid.Nil, false
	}
	return *userID, true
}

// pageParams reads page and per_page query values
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// cursorParams reads cursor, direction and limit query values. ok is false
// when the request asks for page-based pagination.
func cursorParams(c *gin.Context) (*pagination.CursorParams, bool) {
	if c.Query("cursor") == "" && c.Query("limit") == "" {
		return nil, false
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	return &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}, true
}

// queryID parses an optional UUID query value and answers 400 when it is malformed
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}
