package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/catifypro/matcher/internal/domain"
	"github.com/catifypro/matcher/internal/export"
)

// ReconcileUsecase is the slice of the usecase layer the handlers need.
type ReconcileUsecase interface {
	Reconcile(ctx context.Context, tenantID string, filenames []string) (*domain.ReconcileResult, error)
	Rank(query string, products []domain.Product) []domain.Suggestion
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	reconcile ReconcileUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(reconcile ReconcileUsecase) *Handler {
	return &Handler{reconcile: reconcile}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catifypro-matcher",
		"version": "1.0.0",
	})
}

type matchRequest struct {
	Query      string           `json:"query" binding:"required"`
	Candidates []domain.Product `json:"candidates" binding:"required,min=1"`
}

// MatchProducts ranks inline candidates against a free-text query without
// touching the catalog backend. Useful for previews and for callers that
// already hold the product list.
func (h *Handler) MatchProducts(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions := h.reconcile.Rank(req.Query, req.Candidates)

	c.JSON(http.StatusOK, gin.H{
		"query":       req.Query,
		"suggestions": suggestions,
	})
}

type reconcileRequest struct {
	TenantID  string   `json:"tenantId" binding:"required"`
	Filenames []string `json:"filenames" binding:"required,min=1"`
}

// ReconcileImages matches a batch of uploaded image filenames against a
// tenant's catalog and returns the per-image triage.
func (h *Handler) ReconcileImages(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reconcile.Reconcile(c.Request.Context(), req.TenantID, req.Filenames)
	if err != nil {
		h.writeReconcileError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportReconcile runs the same reconcile flow and streams the outcome as an
// XLSX review workbook.
func (h *Handler) ExportReconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reconcile.Reconcile(c.Request.Context(), req.TenantID, req.Filenames)
	if err != nil {
		h.writeReconcileError(c, err)
		return
	}

	filename := fmt.Sprintf("reconcile-%s-%s.xlsx", req.TenantID, time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.WriteReconcileXLSX(result, c.Writer); err != nil {
		// Headers already sent; all we can do is abort the stream
		_ = c.Error(err)
	}
}

// writeReconcileError maps usecase errors to HTTP status codes.
func (h *Handler) writeReconcileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTenantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCatalog):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
