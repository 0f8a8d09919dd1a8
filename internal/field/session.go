package field

import (
	"fmt"
	"sync"
	"time"

	"tempo-cli/internal/adapter"
)

// QueryTimer runs one pending expiry at a time. Scheduling a new generation
// cancels the previous one.
type QueryTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func (q *QueryTimer) Schedule(gen uint64, d time.Duration, fire func(gen uint64)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
	q.gen = gen
	q.timer = time.AfterFunc(d, func() { fire(gen) })
}

func (q *QueryTimer) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}

type controlMode int

const (
	modeUnknown controlMode = iota
	modeControlled
	modeUncontrolled
)

func (m controlMode) String() string {
	if m == modeControlled {
		return "controlled"
	}
	return "uncontrolled"
}

// Session owns the state of one field for callers that keep it between
// events. It is safe for concurrent use and expires pending queries on its
// own timer.
type Session struct {
	mu       sync.Mutex
	field    *Field
	st       State
	timer    QueryTimer
	mode     controlMode
	onChange func(prev, next State)
}

func NewSession(f *Field, value adapter.Date) *Session {
	return &Session{field: f, st: f.Init(value)}
}

func (s *Session) Field() *Field { return s.field }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

func (s *Session) Value() adapter.Date { return s.State().Value }

// OnChange registers fn to run after every command that changes the value.
func (s *Session) OnChange(fn func(prev, next State)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Apply runs a command against the current state. The query timer is
// updated under the same lock so the newest query always owns it.
func (s *Session) Apply(cmd func(*Field, State) State) State {
	s.mu.Lock()
	prev := s.st
	next := cmd(s.field, prev)
	s.st = next
	fn := s.onChange
	switch {
	case next.Query == nil:
		s.timer.Stop()
	case next.QueryGen != prev.QueryGen:
		s.timer.Schedule(next.QueryGen, s.field.QueryTimeout(), s.expire)
	}
	s.mu.Unlock()

	if fn != nil && !prev.Value.Equal(next.Value) {
		fn(prev, next)
	}
	return next
}

func (s *Session) HandleKey(k Key) State {
	return s.Apply(func(f *Field, st State) State { return f.HandleKey(st, k) })
}

func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = s.field.ExpireQuery(s.st, gen)
}

// Sync feeds the caller's view of the value. Controlled callers pass their
// value on every render and the field follows it; uncontrolled callers let
// the field own the value. Switching between the two is a wiring error.
func (s *Session) Sync(value adapter.Date, controlled bool) error {
	mode := modeUncontrolled
	if controlled {
		mode = modeControlled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != modeUnknown && s.mode != mode {
		return fmt.Errorf("%w: was %s, now %s", ErrControlledModeChanged, s.mode, mode)
	}
	s.mode = mode
	if controlled && !value.Equal(s.st.Value) {
		s.st = s.field.SetValue(s.st, value)
	}
	return nil
}

func (s *Session) Close() { s.timer.Stop() }
