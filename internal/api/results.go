package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/louknahm29/HeatTransferEvaluation/internal/exporter"
)

const (
	saveAttempts = 3
	saveBackoff  = 200 * time.Millisecond
)

// GetResult returns a cached processing result.
// GET /api/results/:token
func (h *Handler) GetResult(c *gin.Context) {
	result, ok := h.results.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found or expired"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SaveResult appends the summary record to the tabular store. A storage
// failure does not invalidate the cached result: the caller can still review
// and export it, and retry the save.
// POST /api/results/:token/save
func (h *Handler) SaveResult(c *gin.Context) {
	result, ok := h.results.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found or expired"})
		return
	}

	if err := h.store.AppendSummaryWithRetry(result.Record, saveAttempts, saveBackoff); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": fmt.Sprintf("failed to save summary: %v", err),
			"scope": "storage",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// ExportCSV streams the annotated row table as a CSV download.
// GET /api/results/:token/export.csv
func (h *Handler) ExportCSV(c *gin.Context) {
	result, ok := h.results.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found or expired"})
		return
	}

	filename := fmt.Sprintf("audit_result_%s.csv", result.ProcessedAt.Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := exporter.WriteCSV(c.Writer, result.Rows); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}

// ExportXLSX streams the annotated row table and summary as a workbook.
// GET /api/results/:token/export.xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	result, ok := h.results.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found or expired"})
		return
	}

	f, err := exporter.BuildWorkbook(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to build workbook: %v", err)})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("audit_result_%s.xlsx", result.ProcessedAt.Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
