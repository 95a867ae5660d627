package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: message})
}

// sessionUser writes a 401 and reports false when no session is open.
func sessionUser(c *gin.Context, s Session) (string, bool) {
	userID := s.UserID()
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "no_session", "no active session")
		return "", false
	}
	return userID, true
}

func parseBoundedInt(raw string, fallback, max int) (int, bool) {
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}
