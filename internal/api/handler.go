package api

import (
	"github.com/gin-gonic/gin"

	"github.com/louknahm29/HeatTransferEvaluation/internal/config"
	"github.com/louknahm29/HeatTransferEvaluation/internal/store"
)

// Handler wires the audit API endpoints.
type Handler struct {
	store   *store.Store
	audit   *config.AuditConfig
	results *resultStore
}

// NewHandler creates the API handler.
func NewHandler(store *store.Store, audit *config.AuditConfig) *Handler {
	return &Handler{
		store:   store,
		audit:   audit,
		results: newResultStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Checklist processing
	router.POST("/process", h.Process)

	// Processed results: review, persist, export
	router.GET("/results/:token", h.GetResult)
	router.POST("/results/:token/save", h.SaveResult)
	router.GET("/results/:token/export.csv", h.ExportCSV)
	router.GET("/results/:token/export.xlsx", h.ExportXLSX)

	// Configuration and history
	router.GET("/templates", h.ListTemplates)
	router.GET("/logs", h.ListLogs)
	router.GET("/status", h.GetStatus)
}
