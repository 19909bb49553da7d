package bankers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Observer receives the outcome of every Banker operation.
// Calls happen while the Banker lock is held.
type Observer interface {
	ObserveRequest(response *ResponseRequest)
	ObserveTermination(process int, freed []int64)
	ObserveSafety(isSafe bool)
}

type EventKind uint8

const (
	EventConfigured EventKind = iota + 1
	EventRequest
	EventTermination
	EventRecovery
)

func (k EventKind) String() string {
	switch k {
	case EventConfigured:
		return "configured"
	case EventRequest:
		return "request"
	case EventTermination:
		return "termination"
	case EventRecovery:
		return "recovery"
	}

	return fmt.Sprintf("event %d", uint8(k))
}

type Event struct {
	At      time.Time
	Message string
	Vector  []int64 // request or freed units

	ID uuid.UUID

	ProcessID int
	Kind      EventKind
	Reason    DenialReason
	Granted   bool
}

const _DefaultHistoryLimit = 100

// Banker serializes every operation on one State behind a single lock.
// A tentative state built during admission is never visible to callers.
type Banker struct {
	state *State

	logger   *slog.Logger
	observer Observer

	history      []Event
	historyLimit int

	mu sync.Mutex
}

type Option func(*Banker)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Banker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(b *Banker) {
		b.observer = observer
	}
}

// WithHistoryLimit bounds the kept events, zero or less keeps none.
func WithHistoryLimit(limit int) Option {
	return func(b *Banker) {
		b.historyLimit = limit
	}
}

func NewBanker(params *ParamsNewState, options ...Option) (*Banker, error) {
	state, errCr := NewState(params)
	if errCr != nil {
		return nil,
			errCr
	}

	result := Banker{
		state:        state,
		logger:       slog.New(slog.DiscardHandler),
		historyLimit: _DefaultHistoryLimit,
	}

	for _, option := range options {
		option(&result)
	}

	result.recordConfigured()

	return &result,
		nil
}

func (b *Banker) record(event Event) {
	if b.historyLimit <= 0 {
		return
	}

	event.ID = uuid.New()
	event.At = time.Now()

	b.history = append(b.history, event)

	if overflow := len(b.history) - b.historyLimit; overflow > 0 {
		b.history = append(b.history[:0:0], b.history[overflow:]...)
	}
}

func (b *Banker) recordConfigured() {
	message := fmt.Sprintf(
		"configured %d processes and %d resources",
		b.state.numProcesses,
		b.state.numResources,
	)

	b.logger.Info(
		message,
		slog.String("state", b.state.ID.String()),
	)

	b.record(
		Event{
			Kind:      EventConfigured,
			ProcessID: -1,
			Message:   message,
		},
	)
}

// Reconfigure replaces the state with a brand new one and drops the history.
// On invalid params the current state is kept.
func (b *Banker) Reconfigure(params *ParamsNewState) error {
	state, errCr := NewState(params)
	if errCr != nil {
		return errCr
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = state
	b.history = nil

	b.recordConfigured()

	return nil
}

func (b *Banker) CheckSafety() *ResponseSafety {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := b.state.ComputeSafeSequence()

	b.logger.Debug(
		"safety check",
		slog.Bool("safe", result.IsSafe),
		slog.Any("order", result.Order),
		slog.Any("blocked", result.Blocked),
	)

	if b.observer != nil {
		b.observer.ObserveSafety(result.IsSafe)
	}

	return result
}

func (b *Banker) Request(process int, request []int64) (*ResponseRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	response, errRequest := b.state.RequestResources(process, request)
	if errRequest != nil {
		return nil,
			errRequest
	}

	if response.Granted {
		b.logger.Info(
			"request granted",
			slog.String("process", b.state.ProcessName(process)),
			slog.Any("request", request),
			slog.Any("sequence", response.SafeSequence),
		)
	} else {
		b.logger.Warn(
			"request denied",
			slog.String("process", b.state.ProcessName(process)),
			slog.Any("request", request),
			slog.String("reason", response.Reason.String()),
		)
	}

	b.record(
		Event{
			Kind:      EventRequest,
			ProcessID: process,
			Vector:    copyVector(request),
			Granted:   response.Granted,
			Reason:    response.Reason,
			Message:   response.String(),
		},
	)

	if b.observer != nil {
		b.observer.ObserveRequest(response)
	}

	return response,
		nil
}

func (b *Banker) terminate(process int, kind EventKind) ([]int64, error) {
	freed, errTerminate := b.state.Terminate(process)
	if errTerminate != nil {
		return nil,
			errTerminate
	}

	b.logger.Warn(
		"process terminated",
		slog.String("process", b.state.ProcessName(process)),
		slog.Any("freed", freed),
	)

	b.record(
		Event{
			Kind:      kind,
			ProcessID: process,
			Vector:    copyVector(freed),
			Message: fmt.Sprintf(
				"%s terminated, %d units freed",
				b.state.ProcessName(process),
				sum(freed),
			),
		},
	)

	if b.observer != nil {
		b.observer.ObserveTermination(process, freed)
	}

	return freed,
		nil
}

func (b *Banker) Terminate(process int) ([]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.terminate(process, EventTermination)
}

func (b *Banker) DetectDeadlock(pending [][]int64) ([]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state.DetectDeadlock(pending)
}

// Recover runs State.Recover on a scratch copy first, then replays the
// chosen terminations on the live state so each one is logged and observed.
func (b *Banker) Recover(pending [][]int64) (*ResponseRecover, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	plan, errPlan := b.state.Clone().Recover(pending)
	if errPlan != nil {
		return nil,
			errPlan
	}

	for _, victim := range plan.Terminated {
		if _, errTerminate := b.terminate(victim, EventRecovery); errTerminate != nil {
			return nil,
				errTerminate
		}
	}

	if len(plan.Terminated) > 0 {
		b.logger.Warn(
			"recovered",
			slog.Any("terminated", plan.Terminated),
			slog.Any("freed", plan.Freed),
		)
	}

	return plan,
		nil
}

// Snapshot returns a deep copy of the live state.
func (b *Banker) Snapshot() *State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state.Clone()
}

// History returns the kept events, oldest first.
func (b *Banker) History() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]Event, len(b.history))
	copy(result, b.history)

	return result
}
