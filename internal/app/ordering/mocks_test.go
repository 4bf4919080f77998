package ordering

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dolapkapak/internal/domain"
	"dolapkapak/internal/workflow"
)

type timer struct {
	after time.Duration
	f     func()
}

// manualScheduler holds timers until the test fires them.
type manualScheduler struct {
	mu     sync.Mutex
	timers []timer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = append(s.timers, timer{after: d, f: f})
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// FireNext runs the oldest timer and returns its delay.
func (s *manualScheduler) FireNext(t *testing.T) time.Duration {
	t.Helper()
	s.mu.Lock()
	require.NotEmpty(t, s.timers, "no pending timer")
	next := s.timers[0]
	s.timers = s.timers[1:]
	s.mu.Unlock()
	next.f()
	return next.after
}

type MockAcquirer struct {
	AcquireFunc func(ctx context.Context) (domain.Session, []domain.Order, error)
}

func (m *MockAcquirer) Acquire(ctx context.Context) (domain.Session, []domain.Order, error) {
	return m.AcquireFunc(ctx)
}

type recordCall struct {
	Order   domain.Order
	Session domain.Session
}

type MockRecorder struct {
	mu         sync.Mutex
	calls      []recordCall
	RecordFunc func(ctx context.Context, o domain.Order, s domain.Session) error
}

func (m *MockRecorder) Record(ctx context.Context, o domain.Order, s domain.Session) error {
	m.mu.Lock()
	m.calls = append(m.calls, recordCall{Order: o, Session: s})
	m.mu.Unlock()
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, o, s)
	}
	return nil
}

func (m *MockRecorder) Calls() []recordCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordCall(nil), m.calls...)
}

type published struct {
	Exchange string
	Key      string
	Body     []byte
}

type MockPublisher struct {
	mu          sync.Mutex
	messages    []published
	PublishFunc func(ctx context.Context, exchange, key string, body []byte) error
}

func (m *MockPublisher) Publish(ctx context.Context, exchange, key string, body []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, published{Exchange: exchange, Key: key, Body: body})
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, exchange, key, body)
	}
	return nil
}

// MockWorkflow answers every call with the configured state and error.
type MockWorkflow struct {
	State workflow.State
	Err   error
	Sent  []workflow.Event
}

func (m *MockWorkflow) Send(_ context.Context, ev workflow.Event) (workflow.State, error) {
	m.Sent = append(m.Sent, ev)
	return m.State, m.Err
}

func (m *MockWorkflow) Snapshot(context.Context) (workflow.State, error) {
	return m.State, m.Err
}

type harness struct {
	rt       *Runtime
	sched    *manualScheduler
	recorder *MockRecorder
}

type harnessConfig struct {
	acquirer SessionAcquirer
	recorder *MockRecorder
	history  []domain.Order
}

func startRuntime(t *testing.T, hc harnessConfig) *harness {
	t.Helper()
	if hc.recorder == nil {
		hc.recorder = &MockRecorder{}
	}
	if hc.acquirer == nil {
		history := hc.history
		hc.acquirer = &MockAcquirer{AcquireFunc: func(context.Context) (domain.Session, []domain.Order, error) {
			return demoUser, history, nil
		}}
	}
	sched := &manualScheduler{}
	clock := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	m := workflow.New(workflow.Config{Clock: func() time.Time { return clock }})
	rt := NewRuntime(RuntimeConfig{
		Machine:   m,
		Scheduler: sched,
		Acquirer:  hc.acquirer,
		Recorders: []OrderRecorder{hc.recorder},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		rt.Wait()
	})
	return &harness{rt: rt, sched: sched, recorder: hc.recorder}
}

func (h *harness) send(t *testing.T, ev workflow.Event) workflow.State {
	t.Helper()
	s, err := h.rt.Send(context.Background(), ev)
	require.NoError(t, err)
	return s
}

func (h *harness) snapshot(t *testing.T) workflow.State {
	t.Helper()
	s, err := h.rt.Snapshot(context.Background())
	require.NoError(t, err)
	return s
}

// loggedIn boots the runtime and signs in.
func (h *harness) loggedIn(t *testing.T) {
	t.Helper()
	require.Equal(t, workflow.Loading, h.snapshot(t).Primary)
	h.sched.FireNext(t)
	require.Equal(t, workflow.LoggedOut, h.snapshot(t).Primary)
	h.send(t, workflow.LoginRequested{})
	h.rt.Wait()
	require.Equal(t, workflow.Composing, h.snapshot(t).Primary)
}
