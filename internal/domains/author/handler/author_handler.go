package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/author"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create - POST /v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation("invalid request body", nil))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID - GET /v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetBySlug - GET /v1/authors/slug/:slug
func (h *AuthorHandler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List - GET /v1/authors?limit=&offset=&sort_by=&order=&search=
func (h *AuthorHandler) List(c *gin.Context) {
	var filter author.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FromError(c, apperror.Validation("invalid query parameters", nil))
		return
	}
	filter.Normalize()

	authors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, authors, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// Update - PATCH /v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation("invalid request body", nil))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete - DELETE /v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid id parameter", nil)
	}
	return id, nil
}
