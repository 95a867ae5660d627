package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-engine/internal/infra/notifycenter"
)

const defaultKeepalive = 15 * time.Second

type NotificationHandler struct {
	session   Session
	tray      Tray
	keepalive time.Duration
}

func NewNotificationHandler(session Session, tray Tray) *NotificationHandler {
	return &NotificationHandler{
		session:   session,
		tray:      tray,
		keepalive: defaultKeepalive,
	}
}

type activeResponse struct {
	Notifications []notifycenter.ActiveNotification `json:"notifications"`
	Count         int                               `json:"count"`
}

type openResponse struct {
	Navigate string `json:"navigate"`
}

type permissionRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}

type permissionResponse struct {
	Granted bool `json:"granted"`
}

func (h *NotificationHandler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	active, err := h.tray.Active(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list notifications", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "tray_error", "failed to list notifications")
		return
	}
	if active == nil {
		active = []notifycenter.ActiveNotification{}
	}

	c.JSON(http.StatusOK, activeResponse{Notifications: active, Count: len(active)})
}

// HandleOpen acknowledges a clicked notification and returns the in-app
// route to navigate to.
func (h *NotificationHandler) HandleOpen(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	key := c.Param("key")
	target, err := h.tray.Open(ctx, userID, key)
	if err != nil {
		if errors.Is(err, notifycenter.ErrNotificationNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "notification not found")
			return
		}
		slog.ErrorContext(ctx, "failed to open notification",
			slog.String("dedup_key", key),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "tray_error", "failed to open notification")
		return
	}

	slog.InfoContext(ctx, "notification opened",
		slog.String("dedup_key", key),
		slog.String("navigate", target),
	)

	c.JSON(http.StatusOK, openResponse{Navigate: target})
}

func (h *NotificationHandler) HandleGetPermission(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	granted, err := h.tray.Permission(ctx, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "tray_error", "failed to read permission")
		return
	}

	c.JSON(http.StatusOK, permissionResponse{Granted: granted})
}

func (h *NotificationHandler) HandleSetPermission(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.tray.SetPermission(ctx, userID, *req.Granted); err != nil {
		slog.ErrorContext(ctx, "failed to set notification permission", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "tray_error", "failed to update permission")
		return
	}

	slog.InfoContext(ctx, "notification permission updated", slog.Bool("granted", *req.Granted))
	c.JSON(http.StatusOK, permissionResponse{Granted: *req.Granted})
}

// HandleEvents streams broadcast poller events to an open view as
// Server-Sent Events until the client disconnects.
func (h *NotificationHandler) HandleEvents(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	sub, err := h.tray.Subscribe(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to events", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "tray_error", "failed to subscribe to events")
		return
	}
	defer func() {
		if err := sub.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close event subscription", slog.String("error", err.Error()))
		}
	}()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ready", gin.H{"user_id": userID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case env, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(string(env.Type), env.Data)
			return true
		case <-keepalive.C:
			c.SSEvent("keepalive", time.Now().Unix())
			return true
		}
	})
}
