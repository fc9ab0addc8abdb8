package handler

import (
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

// FileHandler serves stored files named by signed tokens
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Download streams the file of ?token= inline
func (h *FileHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, "File token is required")
		return
	}

	rc, obj, err := h.fileService.Open(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(obj.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, obj.Size, contentType, rc, map[string]string{
		"Content-Disposition": "inline; filename=" + strconv.Quote(obj.Name),
		"Cache-Control":       "private, no-store",
	})
}
