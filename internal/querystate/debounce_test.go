package querystate

import (
	"net/url"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// manualClock fires scheduled callbacks only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type commit struct {
	seq   uint64
	at    time.Duration
	query url.Values
}

type recorder struct {
	mu      sync.Mutex
	commits []commit
	clock   *manualClock
}

func (r *recorder) navigate(seq uint64, next url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, commit{seq: seq, at: r.clock.Now(), query: next})
}

func (r *recorder) all() []commit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]commit(nil), r.commits...)
}

func TestSearchController_DebouncesBurst(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{clock: clock}
	ctl := NewSearchController(mustParse(t, "page=4&type=cafe"), rec.navigate, WithClock(clock))

	ctl.Input("c")
	clock.Advance(40 * time.Millisecond)
	ctl.Input("co")
	clock.Advance(40 * time.Millisecond)
	ctl.Input("cof")
	lastKeystroke := clock.Now()

	if ctl.State() != Debouncing {
		t.Fatalf("expected debouncing, got %s", ctl.State())
	}

	clock.Advance(299 * time.Millisecond)
	if len(rec.all()) != 0 {
		t.Fatalf("commit fired before the debounce elapsed")
	}

	clock.Advance(time.Millisecond)
	commits := rec.all()
	if len(commits) != 1 {
		t.Fatalf("expected exactly one commit, got %d", len(commits))
	}
	if commits[0].at-lastKeystroke < DefaultDebounce {
		t.Fatalf("commit fired %s after last keystroke", commits[0].at-lastKeystroke)
	}
	q := commits[0].query
	if q.Get(KeySearch) != "cof" || q.Get(KeyPage) != "1" || q.Get(KeyType) != "cafe" {
		t.Fatalf("unexpected committed query %v", q)
	}
	if ctl.State() != Committing {
		t.Fatalf("expected committing, got %s", ctl.State())
	}

	ctl.Done()
	if ctl.State() != Idle {
		t.Fatalf("expected idle after navigation landed, got %s", ctl.State())
	}

	clock.Advance(time.Second)
	if len(rec.all()) != 1 {
		t.Fatalf("stale timers must not commit again")
	}
}

func TestSearchController_EmptyValueClearsSearchAndPage(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{clock: clock}
	ctl := NewSearchController(mustParse(t, "search=tea&page=2"), rec.navigate, WithClock(clock))

	ctl.Input("")
	clock.Advance(DefaultDebounce)

	commits := rec.all()
	if len(commits) != 1 {
		t.Fatalf("expected one commit, got %d", len(commits))
	}
	if commits[0].query.Has(KeySearch) || commits[0].query.Has(KeyPage) {
		t.Fatalf("expected search and page removed, got %v", commits[0].query)
	}
}

func TestSearchController_EscapeCommitsImmediately(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{clock: clock}
	ctl := NewSearchController(mustParse(t, "search=tea"), rec.navigate, WithClock(clock))

	if ctl.Value() != "tea" {
		t.Fatalf("expected input to start with the current search, got %q", ctl.Value())
	}

	ctl.Input("tea house")
	ctl.Escape()

	commits := rec.all()
	if len(commits) != 1 {
		t.Fatalf("expected immediate commit, got %d", len(commits))
	}
	if commits[0].at != 0 {
		t.Fatalf("escape must not wait for the debounce")
	}
	if commits[0].query.Has(KeySearch) {
		t.Fatalf("expected empty search, got %v", commits[0].query)
	}
	if ctl.Value() != "" {
		t.Fatalf("expected displayed value cleared, got %q", ctl.Value())
	}

	clock.Advance(time.Second)
	if len(rec.all()) != 1 {
		t.Fatalf("pending keystroke must be cancelled by escape")
	}
}

func TestSearchController_KeystrokeWhileCommitting(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{clock: clock}
	ctl := NewSearchController(url.Values{}, rec.navigate, WithClock(clock))

	ctl.Input("a")
	clock.Advance(DefaultDebounce)
	ctl.Input("ab")
	ctl.Done()
	if ctl.State() != Debouncing {
		t.Fatalf("late completion must not hide the new pending commit, got %s", ctl.State())
	}

	clock.Advance(DefaultDebounce)
	commits := rec.all()
	if len(commits) != 2 || commits[1].query.Get(KeySearch) != "ab" {
		t.Fatalf("expected second commit with latest value, got %+v", commits)
	}
}

func TestSearchController_SequenceFollowsCommitOrder(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{clock: clock}
	var ctl *SearchController
	escaped := false
	// The escape lands after the timer committed but before its dispatch is recorded, so the
	// recorder sees the two commits in reverse order.
	ctl = NewSearchController(mustParse(t, "search=tea"), func(seq uint64, next url.Values) {
		if !escaped {
			escaped = true
			ctl.Escape()
		}
		rec.navigate(seq, next)
	}, WithClock(clock))

	ctl.Input("cof")
	clock.Advance(DefaultDebounce)

	commits := rec.all()
	if len(commits) != 2 {
		t.Fatalf("expected two commits, got %+v", commits)
	}
	if commits[0].query.Has(KeySearch) || commits[1].query.Get(KeySearch) != "cof" {
		t.Fatalf("expected escape dispatched first, got %+v", commits)
	}
	if commits[0].seq <= commits[1].seq {
		t.Fatalf("escape committed last and must carry the higher sequence, got %d and %d", commits[0].seq, commits[1].seq)
	}
}

func TestSearchController_SyncAndStop(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{clock: clock}
	ctl := NewSearchController(url.Values{}, rec.navigate, WithClock(clock))

	ctl.Sync(mustParse(t, "sort_by=rating"))
	ctl.Input("x")
	ctl.Stop()
	clock.Advance(time.Second)
	if len(rec.all()) != 0 {
		t.Fatalf("stopped controller must not commit")
	}
	if ctl.State() != Idle {
		t.Fatalf("expected idle after stop, got %s", ctl.State())
	}

	ctl.Input("y")
	clock.Advance(DefaultDebounce)
	commits := rec.all()
	if len(commits) != 1 || commits[0].query.Get(KeySortBy) != SortByRating {
		t.Fatalf("expected commit built on synced query, got %+v", commits)
	}
}

func TestSearchController_SystemClock(t *testing.T) {
	done := make(chan url.Values, 1)
	ctl := NewSearchController(url.Values{}, func(_ uint64, next url.Values) { done <- next }, WithDelay(20*time.Millisecond))

	start := time.Now()
	ctl.Input("l")
	ctl.Input("la")
	ctl.Input("lat")

	select {
	case next := <-done:
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Fatalf("commit fired after %s", elapsed)
		}
		if next.Get(KeySearch) != "lat" {
			t.Fatalf("expected last keystroke, got %v", next)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for commit")
	}

	select {
	case extra := <-done:
		t.Fatalf("unexpected extra commit %v", extra)
	case <-time.After(60 * time.Millisecond):
	}
	ctl.Stop()
}
