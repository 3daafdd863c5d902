package querystate

import (
	"net/url"
	"sync/atomic"
)

// Control is a single-select input bound to one query key. It commits immediately and refuses a new
// change while the navigation it triggered is still pending.
type Control struct {
	Key string
	// ResetsPage is false for layout toggles such as the grid/list view.
	ResetsPage bool

	pending atomic.Bool
}

// NewFilterControl binds a filter or sort control to key.
func NewFilterControl(key string) *Control {
	return &Control{Key: key, ResetsPage: true}
}

// NewViewControl binds the grid/list toggle.
func NewViewControl() *Control {
	return &Control{Key: KeyView}
}

// Apply computes the next query for value. ok is false when a previous change is still in flight,
// in which case current is returned untouched.
func (c *Control) Apply(current url.Values, value string) (next url.Values, ok bool) {
	if !c.pending.CompareAndSwap(false, true) {
		return current, false
	}
	return c.Patch(current, value), true
}

// Patch computes the next query without engaging the in-flight gate.
func (c *Control) Patch(current url.Values, value string) url.Values {
	if c.ResetsPage {
		return SetParam(current, c.Key, value)
	}
	if c.Key == KeyView {
		return SetView(current, value)
	}
	next := clone(current)
	if value == "" {
		next.Del(c.Key)
	} else {
		next.Set(c.Key, value)
	}
	return next
}

// Pending reports whether a navigation started by this control has not completed yet.
func (c *Control) Pending() bool {
	return c.pending.Load()
}

// Done re-enables the control once its navigation has landed.
func (c *Control) Done() {
	c.pending.Store(false)
}

// Option is one selectable entry of a control.
type Option struct {
	Label    string
	Value    string
	Disabled bool
}

// Cycle returns the value following current among the enabled options, wrapping around.
func Cycle(opts []Option, current string) string {
	enabled := make([]string, 0, len(opts))
	for _, o := range opts {
		if !o.Disabled {
			enabled = append(enabled, o.Value)
		}
	}
	if len(enabled) == 0 {
		return ""
	}
	for i, v := range enabled {
		if v == current {
			return enabled[(i+1)%len(enabled)]
		}
	}
	return enabled[0]
}
