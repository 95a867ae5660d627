package localcache

import (
	"encoding/json"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

// reminderRow mirrors one ReminderDefinition. Instants are stored as unix
// seconds so that range scans compare numerically.
type reminderRow struct {
	UserID          string `gorm:"primaryKey"`
	ID              string `gorm:"primaryKey"`
	Kind            string `gorm:"not null"`
	Enabled         bool   `gorm:"not null;index"`
	Schedule        string `gorm:"type:text"`
	NextTriggerAt   int64  `gorm:"not null;index"`
	LastTriggeredAt *int64
	TriggerCount    int64  `gorm:"not null"`
	Title           string `gorm:"type:text"`
	Body            string `gorm:"type:text"`
	NavTarget       string `gorm:"type:text"`
	Category        string
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (reminderRow) TableName() string {
	return "cached_reminders"
}

func rowFromDomain(def *domain.ReminderDefinition) (reminderRow, error) {
	schedule, err := json.Marshal(wire.ScheduleFromDomain(def.Schedule))
	if err != nil {
		return reminderRow{}, err
	}

	row := reminderRow{
		UserID:        def.UserID,
		ID:            def.ID,
		Kind:          def.Kind.String(),
		Enabled:       def.Enabled,
		Schedule:      string(schedule),
		NextTriggerAt: def.NextTriggerTime.Unix(),
		TriggerCount:  def.TriggerCount,
		Title:         def.Payload.Title,
		Body:          def.Payload.Body,
		NavTarget:     def.Payload.NavTarget,
		Category:      string(def.Payload.Category),
	}
	if def.LastTriggered != nil {
		lt := def.LastTriggered.Unix()
		row.LastTriggeredAt = &lt
	}
	return row, nil
}

// toDomain leaves Schedule nil when the stored schedule cannot be decoded.
func (r reminderRow) toDomain(loc *time.Location) *domain.ReminderDefinition {
	def := &domain.ReminderDefinition{
		ID:              r.ID,
		UserID:          r.UserID,
		Kind:            domain.Kind(r.Kind),
		Enabled:         r.Enabled,
		NextTriggerTime: time.Unix(r.NextTriggerAt, 0).In(loc),
		TriggerCount:    r.TriggerCount,
		Payload: domain.Payload{
			Title:     r.Title,
			Body:      r.Body,
			NavTarget: r.NavTarget,
			Category:  domain.Category(r.Category),
		},
		UpdatedAt: r.UpdatedAt,
	}
	if r.LastTriggeredAt != nil {
		lt := time.Unix(*r.LastTriggeredAt, 0).In(loc)
		def.LastTriggered = &lt
	}

	var rec wire.ScheduleRecord
	if err := json.Unmarshal([]byte(r.Schedule), &rec); err == nil {
		if schedule, err := rec.ToDomain(def.Kind); err == nil {
			def.Schedule = schedule
		}
	}
	return def
}
