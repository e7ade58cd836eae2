package notification

import (
	"time"
)

// Level of the notice shown to the console user after an action.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice is the transient banner returned with a completed action.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Kind identifies what happened. Consumers decide how (and whether) to deliver it.
type Kind string

const (
	KindApplicationSubmitted Kind = "application.submitted"
	KindApplicationApproved  Kind = "application.approved"
	KindApplicationRejected  Kind = "application.rejected"
	KindApplicationPending   Kind = "application.pending"
	KindPasswordReset        Kind = "account.password_reset"
	KindAccountCreated       Kind = "account.created"
)

// Fact records that a notification was emitted.
type Fact struct {
	Kind       Kind              `json:"kind"`
	Subject    string            `json:"subject"`   // id of the record the fact is about
	Recipient  string            `json:"recipient"` // email address, may be empty
	Message    string            `json:"message"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
