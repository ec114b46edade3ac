package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StatusResponse summarizes the service state.
type StatusResponse struct {
	Templates       []string `json:"templates"`
	DefaultTemplate string   `json:"defaultTemplate"`
	ProcessedCount  int      `json:"processedCount"`
	StoredSummaries int      `json:"storedSummaries"`
}

// GetStatus returns the configured templates and storage counters.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	processed, err := h.store.CountAuditLogs()
	if err != nil {
		processed = 0
	}
	stored, err := h.store.CountSummaries()
	if err != nil {
		stored = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		Templates:       h.templateNames(),
		DefaultTemplate: h.audit.DefaultTemplate,
		ProcessedCount:  processed,
		StoredSummaries: stored,
	})
}

// ListTemplates returns the configured checklist templates.
// GET /api/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates": h.templateNames(),
		"default":   h.audit.DefaultTemplate,
	})
}

// ListLogs returns recent upload history.
// GET /api/logs?limit=N
func (h *Handler) ListLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.store.ListAuditLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *Handler) templateNames() []string {
	names := make([]string, 0, len(h.audit.Templates))
	for name := range h.audit.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
