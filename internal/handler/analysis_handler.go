package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clausevet/internal/domain"
	"clausevet/internal/service"
)

// AnalysisHandler handles contract analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	maxFileBytes    int64
}

// NewAnalysisHandler creates a new AnalysisHandler. maxFileSizeMB caps the
// uploaded contract size.
func NewAnalysisHandler(analysisService service.AnalysisService, maxFileSizeMB int64) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		maxFileBytes:    maxFileSizeMB * 1024 * 1024,
	}
}

// Create handles POST /api/v1/analyses
// @Summary Analyze a contract
// @Description Upload a contract (PDF or DOCX) and run the full analysis pipeline
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param contract formData file true "Contract file to analyze (PDF or DOCX)"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse "Missing file or unsupported format"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 502 {object} APIResponse "Analysis capability unavailable"
// @Router /analyses [post]
func (h *AnalysisHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("contract")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "contract file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxFileBytes > 0 && header.Size > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	// A cap of zero or less means uploads are unbounded.
	reader := io.Reader(file)
	if h.maxFileBytes > 0 {
		reader = io.LimitReader(file, h.maxFileBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	if h.maxFileBytes > 0 && int64(len(data)) > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	analysis, err := h.analysisService.Analyze(c.Request.Context(), &service.AnalyzeInput{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, analysis)
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	analyses, err := h.analysisService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, analyses)
}

// GetByID handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	analysis, err := h.analysisService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, analysis)
}

// Delete handles DELETE /api/v1/analyses/:id
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.analysisService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// parseIDParam parses the :id path parameter. Returns false if invalid
// (error response already written).
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
