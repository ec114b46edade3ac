package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/louknahm29/HeatTransferEvaluation/internal/checklist"
)

// ProcessResponse is returned after a checklist upload has been scored.
type ProcessResponse struct {
	Token  string `json:"token"`
	Result any    `json:"result"`
}

// Process ingests a filled checklist, runs the scoring pipeline and caches
// the result for review, save and export.
// POST /api/process (multipart: file, optional template)
func (h *Handler) Process(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	layout, templateName, err := h.audit.Template(c.PostForm("template"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	grid, err := checklist.LoadDocument(fileHeader.Filename, src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := checklist.Process(grid, layout, templateName, fileHeader.Filename, time.Now())
	if err != nil {
		// Scoring failed for this document; nothing partial to show.
		if _, logErr := h.store.LogFailed(fileHeader.Filename, templateName, err.Error()); logErr != nil {
			log.Printf("failed to record audit log: %v", logErr)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, logErr := h.store.LogProcessed(result); logErr != nil {
		// History is best-effort; the computed result is still served.
		log.Printf("failed to record audit log: %v", logErr)
	}

	token := h.results.put(result)
	c.JSON(http.StatusOK, ProcessResponse{
		Token:  token,
		Result: result,
	})
}
