package workflow

import (
	"time"

	"dolapkapak/internal/domain"
)

// Event is anything fed into Machine.Dispatch: user actions, timer
// completions and collaborator results alike.
type Event interface{ Name() string }

type Target string

const (
	TargetCompose Target = "compose"
	TargetHistory Target = "history"
	TargetDocs    Target = "docs"
)

func (t Target) Valid() bool {
	return t == TargetCompose || t == TargetHistory || t == TargetDocs
}

type (
	Boot           struct{}
	LoginRequested struct{}
	Logout         struct{}
	CloseDocs      struct{}
	DismissBanner  struct{}
	Submit         struct{}
	Back           struct{}
	Confirm        struct{}

	Navigate   struct{ Target Target }
	AddItem    struct{ Draft domain.DraftItem }
	RemoveItem struct{ ID string }
	SetDetails struct{ Address, BillingInfo string }
	AttachFile struct{ File domain.FileRef }

	// Timer and collaborator completions carry the token they were issued
	// with; stale ones are ignored.
	BootElapsed         struct{ Token uint64 }
	ConfirmationElapsed struct{ Token uint64 }
	SessionAcquired     struct {
		Token   uint64
		Session domain.Session
		History []domain.Order
	}
	// SessionFailed reports that the identity collaborator gave up.
	SessionFailed struct{ Token uint64 }
)

func (Boot) Name() string                { return "boot" }
func (BootElapsed) Name() string         { return "boot_elapsed" }
func (LoginRequested) Name() string      { return "login_requested" }
func (SessionAcquired) Name() string     { return "session_acquired" }
func (SessionFailed) Name() string       { return "session_failed" }
func (Logout) Name() string              { return "logout" }
func (Navigate) Name() string            { return "navigate" }
func (CloseDocs) Name() string           { return "close_docs" }
func (DismissBanner) Name() string       { return "dismiss_banner" }
func (AddItem) Name() string             { return "add_item" }
func (RemoveItem) Name() string          { return "remove_item" }
func (SetDetails) Name() string          { return "set_details" }
func (AttachFile) Name() string          { return "attach_file" }
func (Submit) Name() string              { return "submit" }
func (Back) Name() string                { return "back" }
func (Confirm) Name() string             { return "confirm" }
func (ConfirmationElapsed) Name() string { return "confirmation_elapsed" }

// Effect is work the machine asks its runtime to perform. The machine never
// performs I/O or waits itself.
type Effect interface{ isEffect() }

// ScheduleTimer asks for Event to be dispatched after After.
type ScheduleTimer struct {
	After time.Duration
	Event Event
}

// AcquireSession asks the session collaborator for an identity; the result
// comes back as SessionAcquired carrying Token.
type AcquireSession struct{ Token uint64 }

// RecordOrder is the fire-and-forget record-order notification.
type RecordOrder struct {
	Order   domain.Order
	Session domain.Session
}

func (ScheduleTimer) isEffect()  {}
func (AcquireSession) isEffect() {}
func (RecordOrder) isEffect()    {}
