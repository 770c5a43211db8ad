package messaging

import "time"

type ActivityType string

const (
	ActivityUserRegistered ActivityType = "user.registered"
	ActivityUserLoggedIn   ActivityType = "user.logged_in"
	ActivityPasswordReset  ActivityType = "password.reset"
)

// ActivityEvent is published after an account action succeeds upstream.
type ActivityEvent struct {
	Type       ActivityType `json:"type"`
	EventID    string       `json:"event_id"`
	LoginID    string       `json:"login_id,omitempty"`
	Email      string       `json:"email,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
