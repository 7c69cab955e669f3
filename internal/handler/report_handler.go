package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"clausevet/internal/domain"
	"clausevet/internal/service"
)

// ReportHandler serves report downloads and clause-table exports.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport handles GET /api/v1/analyses/:id/report
// @Summary Download the analysis report
// @Description Returns the narrative report payload labeled as a PDF
// @Tags reports
// @Produce application/pdf
// @Param id path string true "Analysis ID"
// @Success 200 {file} binary
// @Failure 404 {object} APIResponse "Analysis not found"
// @Router /analyses/{id}/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	payload, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}

// Export handles GET /api/v1/analyses/:id/export?format=csv|xlsx
func (h *ReportHandler) Export(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		if err := h.reportService.ExportCSV(c.Request.Context(), id, &buf); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "clauses-"+id.String()+".csv"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := h.reportService.ExportXLSX(c.Request.Context(), id, &buf); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "clauses-"+id.String()+".xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		HandleError(c, domain.ErrInvalidExportFormat)
	}
}
