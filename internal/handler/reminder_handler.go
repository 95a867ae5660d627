package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/trigger"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

const (
	defaultNextLimit     = 1
	maxNextLimit         = 20
	defaultUpcomingCount = 5
	maxUpcomingCount     = 50
)

// ReminderHandler serves read-only reminder views from the local cache, so
// they keep working while the reminder store is unreachable.
type ReminderHandler struct {
	session Session
	cache   ReminderReader
	calc    *trigger.Calculator
	loc     *time.Location
	now     func() time.Time
}

func NewReminderHandler(session Session, cache ReminderReader, calc *trigger.Calculator, loc *time.Location) *ReminderHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderHandler{
		session: session,
		cache:   cache,
		calc:    calc,
		loc:     loc,
		now:     time.Now,
	}
}

type upcomingResponse struct {
	ReminderID string      `json:"reminder_id"`
	Kind       string      `json:"kind"`
	Upcoming   []time.Time `json:"upcoming"`
}

func (h *ReminderHandler) HandleNext(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	limit, ok := parseBoundedInt(c.Query("limit"), defaultNextLimit, maxNextLimit)
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "limit must be between 1 and 20")
		return
	}

	defs, err := h.cache.NextUpcoming(ctx, userID, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read upcoming reminders",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "cache_error", "failed to read reminders")
		return
	}

	resp := wire.RemindersResponse{
		Reminders: make([]wire.ReminderRecord, 0, len(defs)),
		Count:     len(defs),
	}
	for _, def := range defs {
		resp.Reminders = append(resp.Reminders, wire.FromDomain(def))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReminderHandler) HandleUpcoming(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := sessionUser(c, h.session)
	if !ok {
		return
	}

	count, ok := parseBoundedInt(c.Query("count"), defaultUpcomingCount, maxUpcomingCount)
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "count must be between 1 and 50")
		return
	}

	id := c.Param("id")
	def, err := h.cache.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "reminder not found")
			return
		}
		slog.ErrorContext(ctx, "failed to read reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "cache_error", "failed to read reminder")
		return
	}

	upcoming := h.calc.Upcoming(def, h.now().In(h.loc), count)
	if upcoming == nil {
		upcoming = []time.Time{}
	}

	c.JSON(http.StatusOK, upcomingResponse{
		ReminderID: def.ID,
		Kind:       def.Kind.String(),
		Upcoming:   upcoming,
	})
}
