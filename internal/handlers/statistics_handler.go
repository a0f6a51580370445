package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

type StatisticsHandler struct {
	BaseHandler
	statisticsService services.StatisticsService
}

func NewStatisticsHandler(statisticsService services.StatisticsService, logger utils.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		BaseHandler:       NewBaseHandler(logger),
		statisticsService: statisticsService,
	}
}

// GetStatistics returns the progress view for a student
// @Summary Get practice statistics
// @Tags statistics
// @Produce json
// @Param user_id path string true "Student ID"
// @Param subject_id query string false "Filter by course"
// @Success 200 {object} analytics.Statistics
// @Failure 403 {object} ErrorResponse
// @Router /statistics/{user_id} [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}
	if !CanAccessStudent(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Students can only access their own statistics",
		})
		return
	}

	subjectID := c.Query("subject_id")

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
