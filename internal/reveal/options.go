// Package reveal models scroll-triggered visibility of page elements.
//
// An Observer turns viewport intersection entries into a single visible flag,
// optionally once-only and optionally delayed. The browser script applies the
// same rules to elements carrying the attributes produced by Options.Attrs.
package reveal

import (
	"fmt"
	"html/template"
	"strconv"
	"time"
)

type Options struct {
	// Threshold is the fraction of the element that must be visible.
	Threshold float64
	// RootMargin insets the viewport, CSS margin syntax.
	RootMargin string
	// Once stops observing after the first reveal.
	Once bool
	// AnimationDelay defers setting the flag after a reveal.
	AnimationDelay time.Duration
}

type Option func(*Options)

func WithThreshold(v float64) Option {
	return func(o *Options) { o.Threshold = v }
}

func WithRootMargin(m string) Option {
	return func(o *Options) { o.RootMargin = m }
}

func WithDelay(d time.Duration) Option {
	return func(o *Options) { o.AnimationDelay = d }
}

// Repeat makes the element hide again when it leaves the viewport.
func Repeat() Option {
	return func(o *Options) { o.Once = false }
}

// Configure applies opts over the defaults: threshold 0.1, margin "0px",
// once, no delay.
func Configure(opts ...Option) Options {
	o := Options{
		Threshold:  0.1,
		RootMargin: "0px",
		Once:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Threshold < 0 {
		o.Threshold = 0
	}
	if o.Threshold > 1 {
		o.Threshold = 1
	}
	if o.AnimationDelay < 0 {
		o.AnimationDelay = 0
	}
	return o
}

// Attrs renders the data attributes read by the browser script.
func (o Options) Attrs() template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal data-reveal-threshold="%s" data-reveal-margin="%s" data-reveal-once="%t" data-reveal-delay="%d"`,
		strconv.FormatFloat(o.Threshold, 'f', -1, 64),
		template.HTMLEscapeString(o.RootMargin),
		o.Once,
		o.AnimationDelay.Milliseconds(),
	))
}
