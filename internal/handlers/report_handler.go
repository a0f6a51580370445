package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// GetReport returns the full practice analysis report for a student
// @Summary Get practice report
// @Tags reports
// @Produce json
// @Param user_id path string true "Student ID"
// @Success 200 {object} analytics.Report
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/{user_id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}
	if !CanAccessStudent(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Students can only access their own report",
		})
		return
	}

	h.LogRequest(c, "Generating practice report", "target_user", userID)

	report, err := h.reportService.GetReport(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportReport streams the report as an XLSX workbook
// @Summary Export practice report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param user_id path string true "Student ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /reports/{user_id}/export [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}
	if !CanAccessStudent(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Students can only export their own report",
		})
		return
	}

	h.LogRequest(c, "Exporting practice report", "target_user", userID)

	exported, err := h.reportService.ExportReport(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exported.FileName+`"`)
	c.Data(http.StatusOK, exported.ContentType, exported.Data)
}
