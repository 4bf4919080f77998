package ordering

import (
	"context"
	"errors"
	"sync"
	"time"

	"dolapkapak/internal/common/logger"
	"dolapkapak/internal/workflow"
)

var ErrStopped = errors.New("ordering runtime stopped")

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

type request struct {
	ev    workflow.Event // nil reads the state
	reply chan reply
}

type reply struct {
	state workflow.State
	err   error
}

// Runtime is the single actor that owns the machine. HTTP handlers, timers
// and collaborators all reach it through one channel.
type Runtime struct {
	machine   *workflow.Machine
	sched     Scheduler
	acquirer  SessionAcquirer
	recorders []OrderRecorder
	lg        *logger.Logger

	requests chan request
	done     chan struct{}
	ctx      context.Context
	wg       sync.WaitGroup
}

type RuntimeConfig struct {
	Machine   *workflow.Machine
	Scheduler Scheduler
	Acquirer  SessionAcquirer
	Recorders []OrderRecorder
	Logger    *logger.Logger
}

func NewRuntime(cfg RuntimeConfig) *Runtime {
	if cfg.Scheduler == nil {
		cfg.Scheduler = wallClock{}
	}
	if cfg.Acquirer == nil {
		cfg.Acquirer = FixtureAcquirer{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Runtime{
		machine:   cfg.Machine,
		sched:     cfg.Scheduler,
		acquirer:  cfg.Acquirer,
		recorders: cfg.Recorders,
		lg:        cfg.Logger,
		requests:  make(chan request),
		done:      make(chan struct{}),
	}
}

// Run boots the machine and serves events until ctx ends.
func (rt *Runtime) Run(ctx context.Context) error {
	rt.ctx = ctx
	defer close(rt.done)

	rt.apply(workflow.Boot{})
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-rt.requests:
			var rep reply
			if req.ev != nil {
				rep.err = rt.apply(req.ev)
			}
			rep.state = rt.machine.State()
			if req.reply != nil {
				req.reply <- rep
			}
		}
	}
}

func (rt *Runtime) apply(ev workflow.Event) error {
	effects, err := rt.machine.Dispatch(ev)
	if err != nil {
		return err
	}
	for _, e := range effects {
		rt.execute(e)
	}
	return nil
}

func (rt *Runtime) execute(e workflow.Effect) {
	switch e := e.(type) {
	case workflow.ScheduleTimer:
		ev := e.Event
		rt.sched.AfterFunc(e.After, func() { rt.post(ev) })
	case workflow.AcquireSession:
		token := e.Token
		rt.spawn(func(ctx context.Context) {
			session, history, err := rt.acquirer.Acquire(ctx)
			if err != nil {
				rt.lg.Error("session_acquire_failed", err, nil)
				rt.post(workflow.SessionFailed{Token: token})
				return
			}
			rt.post(workflow.SessionAcquired{Token: token, Session: session, History: history})
		})
	case workflow.RecordOrder:
		for _, r := range rt.recorders {
			r := r
			rt.spawn(func(ctx context.Context) {
				if err := r.Record(ctx, e.Order, e.Session); err != nil {
					rt.lg.Error("order_record_failed", err, map[string]any{"order_id": e.Order.OrderID})
				}
			})
		}
	default:
		rt.lg.Warn("unknown_effect", map[string]any{"effect": e})
	}
}

func (rt *Runtime) spawn(f func(ctx context.Context)) {
	rt.wg.Add(1)
	go func() {
		defer rt.wg.Done()
		f(rt.ctx)
	}()
}

// post delivers an event from a timer or collaborator without waiting for the result.
func (rt *Runtime) post(ev workflow.Event) {
	select {
	case rt.requests <- request{ev: ev}:
	case <-rt.done:
	}
}

// Send applies ev and returns the resulting state.
func (rt *Runtime) Send(ctx context.Context, ev workflow.Event) (workflow.State, error) {
	rep := make(chan reply, 1)
	select {
	case rt.requests <- request{ev: ev, reply: rep}:
	case <-rt.done:
		return workflow.State{}, ErrStopped
	case <-ctx.Done():
		return workflow.State{}, ctx.Err()
	}
	r := <-rep
	return r.state, r.err
}

func (rt *Runtime) Snapshot(ctx context.Context) (workflow.State, error) {
	return rt.Send(ctx, nil)
}

// Wait blocks until every collaborator call started so far has returned.
func (rt *Runtime) Wait() { rt.wg.Wait() }
