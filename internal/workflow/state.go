package workflow

import "dolapkapak/internal/domain"

type Primary int

const (
	LoggedOut Primary = iota
	Loading
	Composing
	Summarizing
	History
)

func (p Primary) String() string {
	switch p {
	case LoggedOut:
		return "logged_out"
	case Loading:
		return "loading"
	case Composing:
		return "composing"
	case Summarizing:
		return "summarizing"
	case History:
		return "history"
	default:
		return "unknown"
	}
}

type loadingReason int

const (
	loadingBoot loadingReason = iota
	loadingLogin
)

// Draft is the composition form's content outside the staged items.
type Draft struct {
	Items       []domain.OrderItem `json:"items"`
	Address     string             `json:"address,omitempty"`
	BillingInfo string             `json:"billing_info,omitempty"`
	File        *domain.FileRef    `json:"file,omitempty"`
}

// State is a read-only snapshot handed to the view layer.
type State struct {
	Primary               Primary
	DocsOpen              bool
	ConfirmationAnimating bool
	BannerVisible         bool
	Session               *domain.Session
	History               []domain.Order
	Draft                 Draft
	Pending               *domain.PendingOrder
	Validation            string
	Notice                string
}

func (s State) LoggedIn() bool { return s.Session != nil }
