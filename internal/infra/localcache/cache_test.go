package localcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

var testCred = domain.Credential{UserID: "user-1", Token: "unused"}

func newTestCache(t *testing.T, now time.Time) *Cache {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}

	cache, err := New(db, WithClock(func() time.Time { return now }), WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func dailyDef(id string, ntt time.Time) *domain.ReminderDefinition {
	return &domain.ReminderDefinition{
		ID:              id,
		UserID:          testCred.UserID,
		Kind:            domain.KindDaily,
		Enabled:         true,
		Schedule:        domain.DailySchedule{Time: domain.NewClockTime(ntt.Hour(), ntt.Minute())},
		NextTriggerTime: ntt,
		TriggerCount:    3,
		Payload:         domain.Payload{Title: "Breakfast", Body: "Log your meal", NavTarget: "/meals", Category: domain.CategoryMeal},
	}
}

func TestCache_FetchDue_Window(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	cache := newTestCache(t, now)
	ctx := context.Background()

	disabled := dailyDef("disabled", now.Add(-time.Minute))
	disabled.Enabled = false

	other := dailyDef("other-user", now)
	other.UserID = "user-2"

	err := cache.Mirror(ctx, []*domain.ReminderDefinition{
		dailyDef("past-20m", now.Add(-20*time.Minute)),
		dailyDef("past-40m", now.Add(-40*time.Minute)),
		dailyDef("future-10m", now.Add(10*time.Minute)),
		dailyDef("future-45m", now.Add(45*time.Minute)),
		disabled,
		other,
	})
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	defs, err := cache.FetchDue(ctx, testCred, 30*time.Minute, 30*time.Minute)
	if err != nil {
		t.Fatalf("FetchDue() error = %v", err)
	}

	var ids []string
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	if got, want := strings.Join(ids, ","), "past-20m,future-10m"; got != want {
		t.Errorf("due ids = %s, want %s", got, want)
	}
	if defs[0].Schedule == nil {
		t.Error("schedule not restored from cache")
	}
}

func TestCache_RecordTrigger(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 5, 10, 0, time.UTC)
	cache := newTestCache(t, now)
	ctx := context.Background()

	def := dailyDef("r1", time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	if err := cache.Mirror(ctx, []*domain.ReminderDefinition{def}); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	next := time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)
	write := domain.TriggerWrite{ReminderID: "r1", NextTriggerTime: next, PreviousTriggerCount: 3}

	got, err := cache.RecordTrigger(ctx, testCred, write)
	if err != nil {
		t.Fatalf("RecordTrigger() error = %v", err)
	}
	if got.TriggerCount != 4 {
		t.Errorf("TriggerCount = %d, want 4", got.TriggerCount)
	}
	if !got.NextTriggerTime.Equal(next) {
		t.Errorf("NextTriggerTime = %v, want %v", got.NextTriggerTime, next)
	}
	if got.LastTriggered == nil || !got.LastTriggered.Equal(now) {
		t.Errorf("LastTriggered = %v, want %v", got.LastTriggered, now)
	}

	// Same previous count again: the occurrence was already recorded.
	if _, err := cache.RecordTrigger(ctx, testCred, write); !errors.Is(err, domain.ErrTriggerConflict) {
		t.Errorf("second RecordTrigger() error = %v, want ErrTriggerConflict", err)
	}

	regress := domain.TriggerWrite{ReminderID: "r1", NextTriggerTime: next.Add(-time.Hour), PreviousTriggerCount: 4}
	if _, err := cache.RecordTrigger(ctx, testCred, regress); !errors.Is(err, domain.ErrTriggerConflict) {
		t.Errorf("regressing RecordTrigger() error = %v, want ErrTriggerConflict", err)
	}

	missing := domain.TriggerWrite{ReminderID: "nope", NextTriggerTime: next, PreviousTriggerCount: 0}
	if _, err := cache.RecordTrigger(ctx, testCred, missing); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("missing RecordTrigger() error = %v, want ErrReminderNotFound", err)
	}
}

func TestCache_MirrorOverwritesLocalValues(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 5, 0, 0, time.UTC)
	cache := newTestCache(t, now)
	ctx := context.Background()

	def := dailyDef("r1", time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	if err := cache.Mirror(ctx, []*domain.ReminderDefinition{def}); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if _, err := cache.RecordTrigger(ctx, testCred, domain.TriggerWrite{
		ReminderID:           "r1",
		NextTriggerTime:      time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
		PreviousTriggerCount: 3,
	}); err != nil {
		t.Fatalf("RecordTrigger() error = %v", err)
	}

	remote := dailyDef("r1", time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC))
	remote.TriggerCount = 10
	if err := cache.Mirror(ctx, []*domain.ReminderDefinition{remote}); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	defs, err := cache.ListReminders(ctx, testCred)
	if err != nil {
		t.Fatalf("ListReminders() error = %v", err)
	}
	if len(defs) != 1 || defs[0].TriggerCount != 10 || !defs[0].NextTriggerTime.Equal(remote.NextTriggerTime) {
		t.Errorf("cached = %+v, want remote values", defs[0])
	}
}

func TestCache_ReplaceAndNextUpcoming(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	cache := newTestCache(t, now)
	ctx := context.Background()

	if err := cache.Mirror(ctx, []*domain.ReminderDefinition{
		dailyDef("stale", now.Add(time.Hour)),
	}); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	err := cache.Replace(ctx, testCred.UserID, []*domain.ReminderDefinition{
		dailyDef("later", now.Add(3*time.Hour)),
		dailyDef("soon", now.Add(time.Hour)),
		dailyDef("overdue", now.Add(-time.Hour)),
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	all, err := cache.ListReminders(ctx, testCred)
	if err != nil {
		t.Fatalf("ListReminders() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}

	upcoming, err := cache.NextUpcoming(ctx, testCred.UserID, 2)
	if err != nil {
		t.Fatalf("NextUpcoming() error = %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != "soon" || upcoming[1].ID != "later" {
		t.Errorf("upcoming = %v", upcoming)
	}
}

func TestCache_MalformedScheduleSurvives(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	cache := newTestCache(t, now)
	ctx := context.Background()

	def := dailyDef("broken", now)
	def.Schedule = nil
	if err := cache.Mirror(ctx, []*domain.ReminderDefinition{def}); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	defs, err := cache.FetchDue(ctx, testCred, time.Minute, time.Minute)
	if err != nil {
		t.Fatalf("FetchDue() error = %v", err)
	}
	if len(defs) != 1 || defs[0].Schedule != nil {
		t.Errorf("defs = %+v, want one definition with nil schedule", defs)
	}
}

func TestCache_Get(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	cache := newTestCache(t, now)
	ctx := context.Background()

	if err := cache.Mirror(ctx, []*domain.ReminderDefinition{dailyDef("r1", now.Add(time.Hour))}); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	got, err := cache.Get(ctx, testCred.UserID, "r1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "r1" || !got.NextTriggerTime.Equal(now.Add(time.Hour)) {
		t.Errorf("Get() = %+v", got)
	}

	if _, err := cache.Get(ctx, "user-2", "r1"); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Errorf("Get() for another user error = %v, want ErrReminderNotFound", err)
	}
}
