// Package workflow is the ordering state machine: it owns the current view,
// the session, the composition draft and the pending order, and turns events
// into state changes plus effects for its runtime to carry out.
//
// The machine is synchronous and single-owner. Timers and collaborator
// results are ordinary events, so every transition can be driven from a test
// without wall-clock waits.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/domain"
	"dolapkapak/internal/pricing"
	"dolapkapak/internal/staging"
)

const (
	DefaultBootDelay         = time.Second
	DefaultConfirmationDelay = 2 * time.Second
)

const noticeConfirmed = "Siparişiniz (%s) başarıyla alındı! Detaylar e-posta adresinize gönderildi."

// errIgnored marks an event the current state does not accept.
var errIgnored = errors.New("event ignored")

type Config struct {
	Calculator        pricing.CalculatorInterface
	Identity          *Identity
	Clock             func() time.Time
	NewStore          func() *staging.Store
	BootDelay         time.Duration
	ConfirmationDelay time.Duration
	Logger            *logger.Logger
}

type Machine struct {
	calc      pricing.CalculatorInterface
	ids       *Identity
	clock     func() time.Time
	newStore  func() *staging.Store
	bootDelay time.Duration
	ackDelay  time.Duration
	lg        *logger.Logger

	booted          bool
	primary         Primary
	reason          loadingReason
	token           uint64
	docsOpen        bool
	animating       bool
	bannerDismissed bool

	sessions    SessionStore
	items       *staging.Store
	address     string
	billingInfo string
	file        *domain.FileRef
	pending     *domain.PendingOrder

	lastTracking string
	validation   string
	notice       string
}

// New returns a machine in the pre-boot Loading state. Zero Config fields get defaults.
func New(cfg Config) *Machine {
	if cfg.Calculator == nil {
		cfg.Calculator = pricing.NewDefault()
	}
	if cfg.Identity == nil {
		cfg.Identity = NewIdentity()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewStore == nil {
		cfg.NewStore = staging.New
	}
	if cfg.BootDelay <= 0 {
		cfg.BootDelay = DefaultBootDelay
	}
	if cfg.ConfirmationDelay <= 0 {
		cfg.ConfirmationDelay = DefaultConfirmationDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	m := &Machine{
		calc:      cfg.Calculator,
		ids:       cfg.Identity,
		clock:     cfg.Clock,
		newStore:  cfg.NewStore,
		bootDelay: cfg.BootDelay,
		ackDelay:  cfg.ConfirmationDelay,
		lg:        cfg.Logger,
		primary:   Loading,
		reason:    loadingBoot,
	}
	m.resetDraft()
	return m
}

// Dispatch applies ev. Events the current state does not accept change
// nothing and return no error. A ValidationError leaves the primary state as
// it was and is also kept in State().Validation; a ConfigurationError is
// returned untouched.
func (m *Machine) Dispatch(ev Event) ([]Effect, error) {
	from := m.primary
	effects, err := m.apply(ev)
	switch {
	case errors.Is(err, errIgnored):
		m.lg.Debug("workflow_event_ignored", map[string]any{"event": ev.Name(), "state": from.String()})
		return nil, nil
	case err != nil:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			m.validation = ve.Message
		}
		m.lg.Debug("workflow_event_rejected", map[string]any{"event": ev.Name(), "state": from.String(), "error": err.Error()})
		return nil, err
	}
	m.lg.Debug("workflow_transition", map[string]any{"event": ev.Name(), "from": from.String(), "to": m.primary.String()})
	return effects, nil
}

func (m *Machine) apply(ev Event) ([]Effect, error) {
	switch e := ev.(type) {
	case Boot:
		return m.boot()
	case BootElapsed:
		return m.bootElapsed(e)
	case LoginRequested:
		return m.login()
	case SessionAcquired:
		return m.sessionAcquired(e)
	case SessionFailed:
		if m.primary != Loading || m.reason != loadingLogin || e.Token != m.token {
			return nil, errIgnored
		}
		m.primary = LoggedOut
		m.validation = domain.ErrMsgLoginFailed
		return nil, nil
	case Logout:
		return m.logout()
	case Navigate:
		return m.navigate(e.Target)
	case CloseDocs:
		if !m.docsOpen {
			return nil, errIgnored
		}
		m.docsOpen = false
		return nil, nil
	case DismissBanner:
		if !m.sessions.Active() || m.bannerDismissed {
			return nil, errIgnored
		}
		m.bannerDismissed = true
		return nil, nil
	case AddItem:
		return m.addItem(e.Draft)
	case RemoveItem:
		if !m.composing() {
			return nil, errIgnored
		}
		m.succeeded()
		m.items.RemoveItem(e.ID)
		return nil, nil
	case SetDetails:
		if !m.composing() {
			return nil, errIgnored
		}
		m.succeeded()
		m.address, m.billingInfo = e.Address, e.BillingInfo
		return nil, nil
	case AttachFile:
		if !m.composing() {
			return nil, errIgnored
		}
		m.succeeded()
		f := e.File
		m.file = &f
		return nil, nil
	case Submit:
		return m.submit()
	case Back:
		if !m.reviewing() {
			return nil, errIgnored
		}
		m.succeeded()
		m.pending = nil
		m.primary = Composing
		return nil, nil
	case Confirm:
		return m.confirm()
	case ConfirmationElapsed:
		return m.confirmationElapsed(e)
	default:
		return nil, fmt.Errorf("unknown event %T: %w", ev, errIgnored)
	}
}

func (m *Machine) boot() ([]Effect, error) {
	if m.booted {
		return nil, errIgnored
	}
	m.booted = true
	m.primary, m.reason = Loading, loadingBoot
	m.token++
	return []Effect{ScheduleTimer{After: m.bootDelay, Event: BootElapsed{Token: m.token}}}, nil
}

func (m *Machine) bootElapsed(e BootElapsed) ([]Effect, error) {
	if !m.booted || m.primary != Loading || m.reason != loadingBoot || e.Token != m.token {
		return nil, errIgnored
	}
	m.primary = LoggedOut
	return nil, nil
}

func (m *Machine) login() ([]Effect, error) {
	if m.primary != LoggedOut {
		return nil, errIgnored
	}
	m.succeeded()
	m.primary, m.reason = Loading, loadingLogin
	m.token++
	return []Effect{AcquireSession{Token: m.token}}, nil
}

func (m *Machine) sessionAcquired(e SessionAcquired) ([]Effect, error) {
	if m.primary != Loading || m.reason != loadingLogin || e.Token != m.token {
		return nil, errIgnored
	}
	m.sessions.Start(e.Session, e.History)
	m.resetDraft()
	m.pending = nil
	m.bannerDismissed = false
	m.primary = Composing
	return nil, nil
}

func (m *Machine) logout() ([]Effect, error) {
	if !m.sessions.Active() {
		return nil, errIgnored
	}
	m.succeeded()
	m.sessions.End()
	m.resetDraft()
	m.pending = nil
	m.docsOpen = false
	m.animating = false
	m.bannerDismissed = false
	// pending timers belong to the old session
	m.token++
	m.primary = LoggedOut
	return nil, nil
}

func (m *Machine) navigate(t Target) ([]Effect, error) {
	if !m.sessions.Active() {
		return nil, errIgnored
	}
	if t == TargetDocs {
		m.succeeded()
		m.docsOpen = true
		return nil, nil
	}
	if m.animating {
		return nil, errIgnored
	}
	switch t {
	case TargetCompose:
		m.succeeded()
		if m.primary != Composing {
			m.resetDraft()
		}
		m.pending = nil
		m.primary = Composing
	case TargetHistory:
		m.succeeded()
		m.resetDraft()
		m.pending = nil
		m.primary = History
	default:
		return nil, errIgnored
	}
	return nil, nil
}

func (m *Machine) addItem(d domain.DraftItem) ([]Effect, error) {
	if !m.composing() {
		return nil, errIgnored
	}
	if _, err := m.items.AddItem(d); err != nil {
		return nil, err
	}
	m.succeeded()
	return nil, nil
}

func (m *Machine) submit() ([]Effect, error) {
	if !m.composing() {
		return nil, errIgnored
	}
	if m.items.Len() == 0 {
		return nil, domain.NewValidation("items", domain.ErrMsgNoItems)
	}
	items := m.items.ListItems()
	price, err := m.calc.ComputePrice(items)
	if err != nil {
		return nil, err
	}
	m.succeeded()
	m.pending = &domain.PendingOrder{
		Items:       items,
		Price:       price,
		Address:     m.address,
		BillingInfo: m.billingInfo,
		File:        copyFile(m.file),
	}
	m.resetDraft()
	m.primary = Summarizing
	return nil, nil
}

func (m *Machine) confirm() ([]Effect, error) {
	if !m.reviewing() {
		return nil, errIgnored
	}
	session, _ := m.sessions.Current()
	m.succeeded()

	now := m.clock()
	p := m.pending
	items := make([]domain.OrderItem, len(p.Items))
	for i, it := range p.Items {
		it.ID = m.ids.ItemID()
		items[i] = it
	}
	order := domain.Order{
		OrderID:        m.ids.OrderID(now),
		TrackingNumber: m.ids.TrackingNumber(now),
		OwnerEmail:     session.Email,
		Items:          items,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		Price:          p.Price,
		Address:        p.Address,
		BillingInfo:    p.BillingInfo,
		File:           copyFile(p.File),
	}

	// history first, then the animation timer
	m.sessions.Prepend(order)
	m.pending = nil
	m.animating = true
	m.token++
	m.lastTracking = order.TrackingNumber

	return []Effect{
		RecordOrder{Order: order.Clone(), Session: session},
		ScheduleTimer{After: m.ackDelay, Event: ConfirmationElapsed{Token: m.token}},
	}, nil
}

func (m *Machine) confirmationElapsed(e ConfirmationElapsed) ([]Effect, error) {
	if !m.animating || e.Token != m.token {
		return nil, errIgnored
	}
	m.animating = false
	m.primary = History
	m.notice = fmt.Sprintf(noticeConfirmed, m.lastTracking)
	return nil, nil
}

// State returns a snapshot that shares no mutable memory with the machine.
func (m *Machine) State() State {
	s := State{
		Primary:               m.primary,
		DocsOpen:              m.docsOpen,
		ConfirmationAnimating: m.animating,
		History:               m.sessions.History(),
		Draft: Draft{
			Items:       m.items.ListItems(),
			Address:     m.address,
			BillingInfo: m.billingInfo,
			File:        copyFile(m.file),
		},
		Validation: m.validation,
		Notice:     m.notice,
	}
	if sess, ok := m.sessions.Current(); ok {
		s.Session = &sess
		s.BannerVisible = !m.bannerDismissed
	}
	if m.pending != nil {
		p := *m.pending
		p.Items = append([]domain.OrderItem(nil), m.pending.Items...)
		p.File = copyFile(m.pending.File)
		s.Pending = &p
	}
	return s
}

func (m *Machine) composing() bool {
	return m.sessions.Active() && m.primary == Composing && !m.animating
}

func (m *Machine) reviewing() bool {
	return m.sessions.Active() && m.primary == Summarizing && m.pending != nil && !m.animating
}

// succeeded clears the inline messages of the previous action.
func (m *Machine) succeeded() {
	m.validation = ""
	m.notice = ""
}

func (m *Machine) resetDraft() {
	m.items = m.newStore()
	m.address, m.billingInfo = "", ""
	m.file = nil
}

func copyFile(f *domain.FileRef) *domain.FileRef {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
