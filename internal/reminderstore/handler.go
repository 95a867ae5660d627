package reminderstore

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

const (
	userIDKey            = "reminderstore.user_id"
	defaultWindowMinutes = 30
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, wire.ErrorResponse{Error: message})
}

// RequireBearer authenticates the access token and stores its user id on
// the gin context.
func (h *Handler) RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := h.service.Authenticate(token)
		if err != nil {
			slog.DebugContext(c.Request.Context(), "access token rejected", slog.String("error", err.Error()))
			respondError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func authenticatedUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func parseWindow(raw string) (time.Duration, bool) {
	if raw == "" {
		return defaultWindowMinutes * time.Minute, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return time.Duration(n) * time.Minute, true
}

func remindersResponse(records []wire.ReminderRecord) wire.RemindersResponse {
	if records == nil {
		records = []wire.ReminderRecord{}
	}
	return wire.RemindersResponse{Reminders: records, Count: len(records)}
}

func (h *Handler) HandleFetchDue(c *gin.Context) {
	ctx := c.Request.Context()
	userID := authenticatedUser(c)

	past, okPast := parseWindow(c.Query("window_past_minutes"))
	future, okFuture := parseWindow(c.Query("window_future_minutes"))
	if !okPast || !okFuture {
		respondError(c, http.StatusBadRequest, "window minutes must be non-negative integers")
		return
	}

	records, err := h.service.FetchDue(ctx, userID, past, future)
	if err != nil {
		if errors.Is(err, ErrInvalidWindow) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to fetch due reminders",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to fetch due reminders")
		return
	}

	c.JSON(http.StatusOK, remindersResponse(records))
}

func (h *Handler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()
	userID := authenticatedUser(c)

	records, err := h.service.List(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reminders",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to list reminders")
		return
	}

	c.JSON(http.StatusOK, remindersResponse(records))
}

func (h *Handler) HandleTrigger(c *gin.Context) {
	ctx := c.Request.Context()
	userID := authenticatedUser(c)
	id := c.Param("id")

	var req wire.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.NextTriggerTime.IsZero() || req.PreviousTriggerCount < 0 {
		respondError(c, http.StatusBadRequest, "next_trigger_time and previous_trigger_count are required")
		return
	}

	rec, err := h.service.RecordTrigger(ctx, userID, domain.TriggerWrite{
		ReminderID:           id,
		NextTriggerTime:      req.NextTriggerTime,
		PreviousTriggerCount: req.PreviousTriggerCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReminderNotFound):
			respondError(c, http.StatusNotFound, "reminder not found")
		case errors.Is(err, domain.ErrTriggerConflict):
			respondError(c, http.StatusConflict, "trigger already recorded")
		default:
			slog.ErrorContext(ctx, "failed to record trigger",
				slog.String("reminder_id", id),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "failed to record trigger")
		}
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) HandleUpsert(c *gin.Context) {
	ctx := c.Request.Context()
	userID := authenticatedUser(c)
	id := c.Param("id")

	var req wire.ReminderRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.service.Upsert(ctx, userID, id, req)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedDefinition) || errors.Is(err, ErrIDMismatch) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to save reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to save reminder")
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	userID := authenticatedUser(c)
	id := c.Param("id")

	if err := h.service.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			respondError(c, http.StatusNotFound, "reminder not found")
			return
		}
		slog.ErrorContext(ctx, "failed to delete reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to delete reminder")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleRegister(c *gin.Context) {
	ctx := c.Request.Context()

	var req wire.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	secret, err := h.service.Register(ctx, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRegistrationDisabled):
			respondError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrUserExists):
			respondError(c, http.StatusConflict, err.Error())
		default:
			slog.ErrorContext(ctx, "failed to register user", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, wire.RegisterResponse{UserID: req.UserID, RefreshToken: secret})
}

func (h *Handler) HandleToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req wire.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.RefreshToken == "" {
		respondError(c, http.StatusBadRequest, "user_id and refresh_token are required")
		return
	}

	token, expiresAt, err := h.service.IssueToken(ctx, req.UserID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			slog.WarnContext(ctx, "refresh token rejected", slog.String("user_id", req.UserID))
			respondError(c, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		slog.ErrorContext(ctx, "failed to issue token", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, wire.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
