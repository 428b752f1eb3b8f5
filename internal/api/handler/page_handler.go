package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cz4r/pkg/response"
)

// PageHandler static pages
type PageHandler struct{}

// NewPageHandler creates a PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home GET /
func (h *PageHandler) Home(c *gin.Context) {
	response.HTML(c, http.StatusOK, "home.html", nil)
}

// Admin GET /admin
func (h *PageHandler) Admin(c *gin.Context) {
	response.HTML(c, http.StatusOK, "admin.html", gin.H{"title": "CZ4R Admin"})
}

// NotFound renders the 404 page for unknown routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	response.HTML(c, http.StatusNotFound, "404.html", gin.H{"title": "CZ4R Not Found"})
}
