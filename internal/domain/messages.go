package domain

// Command is an inbound control message from the foreground to the poller.
type Command interface {
	isCommand()
}

type SetCredential struct {
	UserID string
	Token  string
}

type RefreshCredential struct {
	Token string
}

// SettingsChanged forces an immediate cycle and a full cache sync.
type SettingsChanged struct{}

func (SetCredential) isCommand()     {}
func (RefreshCredential) isCommand() {}
func (SettingsChanged) isCommand()   {}

type EventType string

const (
	EventNotificationShown   EventType = "notification_shown"
	EventNotificationBlocked EventType = "notification_blocked"
	EventCredentialExpired   EventType = "credential_expired"
)

// Event is an outbound message from the poller to the foreground.
type Event interface {
	Type() EventType
}

type NotificationShown struct {
	ReminderID string `json:"reminder_id"`
	DedupKey   string `json:"dedup_key"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	NavTarget  string `json:"nav_target"`
}

type NotificationBlocked struct {
	ReminderID string `json:"reminder_id"`
	DedupKey   string `json:"dedup_key"`
	Reason     string `json:"reason"`
}

type CredentialExpired struct {
	UserID string `json:"user_id"`
}

func (NotificationShown) Type() EventType   { return EventNotificationShown }
func (NotificationBlocked) Type() EventType { return EventNotificationBlocked }
func (CredentialExpired) Type() EventType   { return EventCredentialExpired }
