package querystate

import (
	"net/url"
	"sync"
	"time"
)

// DefaultDebounce is the pause after the last keystroke before a search is committed.
const DefaultDebounce = 300 * time.Millisecond

// State of a SearchController.
type State int

const (
	Idle State = iota
	Debouncing
	Committing
)

func (s State) String() string {
	switch s {
	case Debouncing:
		return "debouncing"
	case Committing:
		return "committing"
	default:
		return "idle"
	}
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. It exists so tests can drive time by hand.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Navigator performs a route replace with the given query. seq increases with every commit and is
// assigned under the controller lock, so a receiver can drop a commit that was dispatched after a
// newer one. It must not block for long: the controller calls it outside its lock but on the timer
// goroutine.
type Navigator func(seq uint64, next url.Values)

// SearchController keeps a text input in sync with the search key of the query string. Keystrokes
// are debounced, Escape commits an empty search immediately. Commits are idempotent so a later one
// simply supersedes an earlier one.
type SearchController struct {
	mu       sync.Mutex
	delay    time.Duration
	clock    Clock
	navigate Navigator

	base  url.Values
	value string
	state State
	timer Timer
	gen   uint64
	seq   uint64
}

// SearchOption customises a SearchController.
type SearchOption func(*SearchController)

// WithDelay overrides the debounce interval.
func WithDelay(d time.Duration) SearchOption {
	return func(s *SearchController) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithClock injects the scheduler used for the debounce timer.
func WithClock(c Clock) SearchOption {
	return func(s *SearchController) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewSearchController creates a controller whose input starts with the current search value.
func NewSearchController(current url.Values, navigate Navigator, opts ...SearchOption) *SearchController {
	s := &SearchController{
		delay:    DefaultDebounce,
		clock:    systemClock{},
		navigate: navigate,
		base:     clone(current),
		value:    firstNonEmpty(current, KeySearch, keyLegacyQ),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input records a keystroke and (re)starts the debounce timer.
func (s *SearchController) Input(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = value
	s.stopTimerLocked()
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(gen) })
	s.state = Debouncing
}

// Escape clears the input and commits an empty search without waiting for the debounce.
func (s *SearchController) Escape() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.value = ""
	seq, next := s.commitLocked()
	s.mu.Unlock()

	s.dispatch(seq, next)
}

// Done marks the in-flight navigation as landed.
func (s *SearchController) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Committing {
		s.state = Idle
	}
}

// Sync replaces the query the next commit builds on, e.g. after another control navigated.
func (s *SearchController) Sync(current url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = clone(current)
}

// Stop cancels any pending commit.
func (s *SearchController) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	if s.state == Debouncing {
		s.state = Idle
	}
}

// Value is what the input currently displays.
func (s *SearchController) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// State reports the controller state.
func (s *SearchController) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SearchController) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		// superseded by a later keystroke or an Escape
		s.mu.Unlock()
		return
	}
	s.timer = nil
	seq, next := s.commitLocked()
	s.mu.Unlock()

	s.dispatch(seq, next)
}

func (s *SearchController) commitLocked() (uint64, url.Values) {
	s.state = Committing
	s.seq++
	s.base = SetParam(s.base, KeySearch, s.value)
	return s.seq, clone(s.base)
}

func (s *SearchController) stopTimerLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SearchController) dispatch(seq uint64, next url.Values) {
	if s.navigate != nil {
		s.navigate(seq, next)
	}
}
