package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// ListStudents returns all active students
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} models.User
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.ListStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// ListCourses returns the course catalog
// @Summary List courses
// @Tags students
// @Produce json
// @Success 200 {array} models.Subject
// @Router /courses [get]
func (h *StudentHandler) ListCourses(c *gin.Context) {
	courses, err := h.studentService.ListCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetSubscriptions returns a student's active course subscriptions
// @Summary Get student subscriptions
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {array} models.Subscription
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/subscriptions [get]
func (h *StudentHandler) GetSubscriptions(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}

	subscriptions, err := h.studentService.GetSubscriptions(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

// ReplaceSubscriptions swaps a student's enrollment for the given course set
// @Summary Replace student subscriptions
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body services.ReplaceSubscriptionsRequest true "Course IDs"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /students/{id}/subscriptions [put]
func (h *StudentHandler) ReplaceSubscriptions(c *gin.Context) {
	teacherID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}

	var req services.ReplaceSubscriptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	req.StudentID = studentID
	req.ReplacedBy = teacherID

	h.LogRequest(c, "Replacing subscriptions", "student_id", studentID, "courses", len(req.SubjectIDs))

	if err := h.studentService.ReplaceSubscriptions(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Subscriptions updated",
	})
}
