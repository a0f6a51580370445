package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// AuthenticatedUserID returns the user id the auth middleware stored, or
// aborts with 401.
func AuthenticatedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return "", false
	}
	return id, true
}

// CanAccessStudent reports whether the caller may read the given student's
// data: teachers and admins see everyone, students only themselves.
func CanAccessStudent(c *gin.Context, studentID string) bool {
	callerID, _ := c.Get("user_id")
	if callerID == studentID {
		return true
	}
	role, _ := c.Get("user_role")
	return role == "teacher" || role == "admin"
}
