package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

type ExerciseHandler struct {
	BaseHandler
	exerciseService services.ExerciseService
}

func NewExerciseHandler(exerciseService services.ExerciseService, logger utils.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler:     NewBaseHandler(logger),
		exerciseService: exerciseService,
	}
}

// ListExercises returns all exercises generated for the caller
// @Summary List exercises
// @Tags exercises
// @Produce json
// @Success 200 {array} models.Exercise
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// ListPending returns the caller's unsolved exercises
// @Summary List pending exercises
// @Tags exercises
// @Produce json
// @Success 200 {array} models.Exercise
// @Router /exercises/pending [get]
func (h *ExerciseHandler) ListPending(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListPending(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// GenerateExercise asks the agent for a new exercise at the student's
// tracked difficulty
// @Summary Generate exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Param request body services.GenerateExerciseRequest true "Generation request"
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exercises/generate [post]
func (h *ExerciseHandler) GenerateExercise(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req services.GenerateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	req.UserID = userID

	h.LogRequest(c, "Requesting exercise", "subject_id", req.SubjectID)

	if err := h.exerciseService.RequestExercise(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Message: "Exercise requested",
	})
}

// GenerateCustomExercise asks the agent for an exercise with an explicit
// topic and difficulty
// @Summary Generate custom exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Param request body services.CustomExerciseRequest true "Custom generation request"
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exercises/custom [post]
func (h *ExerciseHandler) GenerateCustomExercise(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req services.CustomExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	req.UserID = userID

	h.LogRequest(c, "Requesting custom exercise", "subject_id", req.SubjectID, "topic", req.Topic, "difficulty", req.Difficulty)

	if err := h.exerciseService.RequestCustomExercise(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Message: "Custom exercise requested",
	})
}

// SubmitSolution sends an answer to the agent for grading
// @Summary Submit exercise solution
// @Tags exercises
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param request body services.SubmitSolutionRequest true "Answer"
// @Success 200 {object} services.SolutionFeedback
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /exercises/{id}/solution [post]
func (h *ExerciseHandler) SubmitSolution(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}
	exerciseID := ParseStringIDParam(c, "id")
	if exerciseID == "" {
		return
	}

	var req services.SubmitSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	req.UserID = userID
	req.ExerciseID = exerciseID

	feedback, err := h.exerciseService.SubmitSolution(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}
