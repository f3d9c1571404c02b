package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/meigma/crx/pattern"
)

// Executor schedules the scan body of a started search. The background
// implementation dispatches to a new goroutine; the inline
// implementation runs it on the caller's own goroutine with the
// identical output contract.
type Executor interface {
	Go(fn func())
}

type backgroundExecutor struct{}

func (backgroundExecutor) Go(fn func()) { go fn() }

type inlineExecutor struct{}

func (inlineExecutor) Go(fn func()) { fn() }

// EventKind identifies the type of a search event.
type EventKind uint8

const (
	// EventProgress carries an incremental progress update.
	EventProgress EventKind = iota
	// EventComplete carries the final sorted results and statistics.
	EventComplete
	// EventError carries a terminal failure.
	EventError
)

// String returns a human-readable kind name.
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one message from a running search. Progress is set for
// EventProgress, Result for EventComplete, and Err for EventError.
type Event struct {
	Kind     EventKind
	Progress Progress
	Result   *Result
	Err      error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithExecutor sets the executor used to schedule searches.
func WithExecutor(exec Executor) SessionOption {
	return func(s *Session) {
		s.exec = exec
	}
}

// WithInline makes the session run searches inline on the caller's
// goroutine instead of in the background. Start then returns after the
// scan has finished, with every event already buffered on the task.
func WithInline() SessionOption {
	return func(s *Session) {
		s.exec = inlineExecutor{}
	}
}

// Session runs at most one search at a time. Starting a new search
// implicitly cancels the one in flight.
type Session struct {
	exec   Executor
	logger *slog.Logger

	mu     sync.Mutex
	active *Task
}

// NewSession creates a Session that schedules searches in the
// background unless configured otherwise.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{exec: backgroundExecutor{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Session) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// NewID returns a fresh unique search identifier.
func NewID() string {
	return uuid.NewString()
}

// Task is one in-flight or finished search.
type Task struct {
	id     string
	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
}

// ID returns the task's search identifier.
func (t *Task) ID() string { return t.id }

// Events returns the task's message stream.
//
// Progress events arrive in non-decreasing FilesProcessed order,
// followed by exactly one terminal event (EventComplete or
// EventError), after which the channel is closed. A cancelled task
// closes the channel without a terminal event. The channel is buffered
// for the whole scan, so the task never blocks on a slow receiver.
func (t *Task) Events() <-chan Event { return t.events }

// Start begins a search over files with the given compiled pattern.
//
// An empty id is replaced with a generated identifier. If another
// search is in flight for this session it is cancelled before the new
// one starts.
func (s *Session) Start(id string, pat *pattern.Content, files []File, opts ...Option) *Task {
	if id == "" {
		id = NewID()
	}
	cfg := newConfig(opts)

	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		id:     id,
		events: make(chan Event, len(files)+1),
		ctx:    ctx,
		cancel: cancel,
	}

	s.mu.Lock()
	if s.active != nil {
		s.log().Debug("superseding active search", "id", s.active.id, "next", id)
		s.active.cancel()
	}
	s.active = t
	s.mu.Unlock()

	s.log().Debug("search started", "id", id, "files", len(files))
	s.exec.Go(func() { s.run(t, pat, files, cfg) })
	return t
}

// Cancel stops the in-flight search with the given identifier. It
// reports whether a live search was cancelled. Cancellation takes
// effect at the next file boundary; the task then closes its event
// stream without emitting a terminal event.
func (s *Session) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.id != id {
		return false
	}
	s.active.cancel()
	return true
}

// run executes the scan and emits events on the task's channel.
func (s *Session) run(t *Task, pat *pattern.Content, files []File, cfg config) {
	defer close(t.events)
	defer s.finish(t)

	result, err := s.scanGuarded(t, pat, files, cfg)

	if t.ctx.Err() != nil {
		s.log().Debug("search cancelled", "id", t.id)
		return
	}
	if err != nil {
		s.log().Debug("search failed", "id", t.id, "error", err)
		t.events <- Event{Kind: EventError, Err: err}
		return
	}
	s.log().Debug("search complete", "id", t.id,
		"matches", result.Stats.TotalMatches, "matched_files", result.Stats.MatchedFiles)
	t.events <- Event{Kind: EventComplete, Result: result}
}

// scanGuarded runs the scan with a panic guard so an internal fault
// surfaces as the task's single terminal error event.
func (s *Session) scanGuarded(t *Task, pat *pattern.Content, files []File, cfg config) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search: internal fault: %v", r)
		}
	}()

	return scan(t.ctx, pat, files, cfg, func(p Progress) {
		if t.ctx.Err() != nil {
			return
		}
		t.events <- Event{Kind: EventProgress, Progress: p}
	})
}

// finish releases the task's context and clears the session's active
// slot if this task still owns it.
func (s *Session) finish(t *Task) {
	t.cancel()
	s.mu.Lock()
	if s.active == t {
		s.active = nil
	}
	s.mu.Unlock()
}
