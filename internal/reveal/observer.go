package reveal

import (
	"sync"
	"time"
)

// Entry is one intersection report for the observed element.
type Entry struct {
	Ratio        float64
	Intersecting bool
}

// Timer is the subset of *time.Timer the observer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through
// StdAfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc wraps time.AfterFunc.
func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Observer owns the visible flag of one element.
type Observer struct {
	opts      Options
	afterFunc AfterFunc
	onChange  func(visible bool)

	mu        sync.Mutex
	visible   bool
	observing bool
	pending   Timer
	// gen invalidates delayed reveals scheduled before a cancel.
	gen uint64
}

// NewObserver returns a detached observer. onChange may be nil.
func NewObserver(opts Options, onChange func(visible bool)) *Observer {
	return &Observer{
		opts:      opts,
		afterFunc: StdAfterFunc,
		onChange:  onChange,
	}
}

// WithAfterFunc replaces the delay scheduler.
func (o *Observer) WithAfterFunc(f AfterFunc) *Observer {
	o.mu.Lock()
	o.afterFunc = f
	o.mu.Unlock()
	return o
}

// Attach starts observing.
func (o *Observer) Attach() {
	o.mu.Lock()
	o.observing = true
	o.mu.Unlock()
}

// Detach stops observing and drops any pending delayed reveal.
func (o *Observer) Detach() {
	o.mu.Lock()
	o.observing = false
	o.cancelLocked()
	o.mu.Unlock()
}

func (o *Observer) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *Observer) Observing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.observing
}

func (o *Observer) reveals(e Entry) bool {
	return e.Intersecting && e.Ratio >= o.opts.Threshold
}

// Update feeds an intersection entry. Entries arriving while detached are ignored.
func (o *Observer) Update(e Entry) {
	o.mu.Lock()
	if !o.observing {
		o.mu.Unlock()
		return
	}

	if !o.reveals(e) {
		if o.opts.Once {
			o.mu.Unlock()
			return
		}
		o.cancelLocked()
		changed := o.setLocked(false)
		o.mu.Unlock()
		o.notify(changed, false)
		return
	}

	if o.opts.Once {
		o.observing = false
	}

	if o.opts.AnimationDelay > 0 {
		if o.pending == nil && !o.visible {
			gen := o.gen
			o.pending = o.afterFunc(o.opts.AnimationDelay, func() { o.fire(gen) })
		}
		o.mu.Unlock()
		return
	}

	changed := o.setLocked(true)
	o.mu.Unlock()
	o.notify(changed, true)
}

func (o *Observer) fire(gen uint64) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return
	}
	o.pending = nil
	changed := o.setLocked(true)
	o.mu.Unlock()
	o.notify(changed, true)
}

func (o *Observer) cancelLocked() {
	o.gen++
	if o.pending != nil {
		o.pending.Stop()
		o.pending = nil
	}
}

func (o *Observer) setLocked(v bool) bool {
	if o.visible == v {
		return false
	}
	o.visible = v
	return true
}

func (o *Observer) notify(changed, v bool) {
	if changed && o.onChange != nil {
		o.onChange(v)
	}
}

// Initial is the flag an element would carry right after being observed
// while fully inside the viewport (inView) or entirely outside it. The
// animation delay is skipped: this is the state rendered by the server.
func Initial(opts Options, inView bool) bool {
	opts.AnimationDelay = 0
	o := NewObserver(opts, nil)
	o.Attach()
	defer o.Detach()

	if inView {
		o.Update(Entry{Ratio: 1, Intersecting: true})
	} else {
		o.Update(Entry{Ratio: 0, Intersecting: false})
	}
	return o.Visible()
}
