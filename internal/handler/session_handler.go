package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

type SessionHandler struct {
	session Session
}

func NewSessionHandler(session Session) *SessionHandler {
	return &SessionHandler{session: session}
}

type startSessionRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type startSessionResponse struct {
	UserID string `json:"user_id"`
}

type settingsChangedResponse struct {
	Queued bool `json:"queued"`
}

func (h *SessionHandler) HandleStart(c *gin.Context) {
	ctx := c.Request.Context()

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.session.Start(ctx, req.UserID, req.RefreshToken); err != nil {
		slog.WarnContext(ctx, "failed to start session",
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, domain.ErrCredentialExpired) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "refresh token rejected by the reminder store")
			return
		}
		respondError(c, http.StatusBadGateway, "store_unavailable", "could not reach the reminder store")
		return
	}

	c.JSON(http.StatusOK, startSessionResponse{UserID: req.UserID})
}

// HandleSettingsChanged is called by the settings surface after it saved
// reminder definitions.
func (h *SessionHandler) HandleSettingsChanged(c *gin.Context) {
	if _, ok := sessionUser(c, h.session); !ok {
		return
	}

	queued := h.session.SettingsChanged()
	if !queued {
		slog.DebugContext(c.Request.Context(), "settings change coalesced with a queued cycle")
	}

	c.JSON(http.StatusAccepted, settingsChangedResponse{Queued: queued})
}
