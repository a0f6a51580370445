package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

type ChatHandler struct {
	BaseHandler
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		chatService: chatService,
	}
}

// ListSessions returns the caller's chat sessions
// @Summary List chat sessions
// @Tags chat
// @Produce json
// @Success 200 {array} models.ChatSession
// @Router /chat/sessions [get]
func (h *ChatHandler) ListSessions(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}

	sessions, err := h.chatService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// CreateSession starts a new conversation for a course
// @Summary Create chat session
// @Tags chat
// @Accept json
// @Produce json
// @Param request body services.CreateSessionRequest true "Session data"
// @Success 201 {object} models.ChatSession
// @Failure 400 {object} ErrorResponse
// @Router /chat/sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	req.UserID = userID

	h.LogRequest(c, "Creating chat session", "subject_id", req.SubjectID)

	session, err := h.chatService.CreateSession(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetMessages returns the deduplicated history of a session
// @Summary Get session messages
// @Tags chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {array} models.ChatMessage
// @Failure 404 {object} ErrorResponse
// @Router /chat/sessions/{session_id}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "session_id")
	if sessionID == "" {
		return
	}

	messages, err := h.chatService.GetMessages(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage forwards a message to the tutoring agent and waits briefly
// for the reply
// @Summary Send chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body services.SendMessageRequest true "Message"
// @Success 200 {object} services.ChatExchange
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /chat/sessions/{session_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := AuthenticatedUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "session_id")
	if sessionID == "" {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	req.UserID = userID
	req.SessionID = sessionID

	exchange, err := h.chatService.SendMessage(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if exchange.Pending {
		status = http.StatusAccepted
	}
	c.JSON(status, exchange)
}
