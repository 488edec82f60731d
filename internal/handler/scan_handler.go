package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bilagsky/internal/service"
)

// ScanHandler handles document scan endpoints.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Upload handles POST /api/v1/scans
//
// The photo is archived and run through text detection; the response
// carries the scan record with its field suggestion when one could be
// produced.
func (h *ScanHandler) Upload(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	scan, err := h.scanService.Scan(c.Request.Context(), service.ScanInput{
		UserID: userID,
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, scan)
}

// List handles GET /api/v1/scans
func (h *ScanHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	scans, total, err := h.scanService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, scans, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/scans/:id
func (h *ScanHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), userID, scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.scanService.GetDownloadURL(c.Request.Context(), userID, scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"scan":         scan,
		"download_url": downloadURL,
	})
}

// Delete handles DELETE /api/v1/scans/:id
func (h *ScanHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	if err := h.scanService.Delete(c.Request.Context(), userID, scanID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "scan deleted"})
}
