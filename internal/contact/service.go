// Package contact runs the contact form submission flow: validation, the
// per-form state machine, dispatch to the configured sink, and the notice
// shown to the sender.
package contact

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/sink"
)

// Messages shown to the sender.
const (
	MsgSuccess  = "Message sent successfully! I will get back to you soon."
	MsgConfig   = "Backend configuration issue. Please contact the site administrator."
	MsgNetwork  = "Network issue. Please check your internet connection and try again."
	MsgFallback = "Failed to send message. Please try again later."
	MsgBusy     = "Your message is already being sent."
	MsgCooldown = "Please wait a moment before sending another message."
)

// Sink stores a submission. Implementations tag failures with sink.Kind.
type Sink interface {
	Insert(ctx context.Context, s *sink.Submission) error
}

// Limiter gates submissions per client key. Optional.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Request is one submit of one rendered form.
type Request struct {
	FormID    string
	ClientKey string
	Input     Input
}

// Outcome is what the form should show after Submit returns.
type Outcome struct {
	// State is always StateIdle once Submit returns.
	State State
	// Settled is set when the submission reached the sink.
	Settled bool
	Success bool
	Kind    sink.Kind
	Errors  FieldErrors
	Notice  notify.Notice
	// Input holds the values to render back; zero after a successful reset.
	Input Input
	// FormID identifies the form to render next. It changes after a reset.
	FormID string
	Reset  bool
}

type Service struct {
	sink    Sink
	limiter Limiter
	logger  *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
	// onTransition observes state changes, for logging and tests.
	onTransition func(formID string, from, to State)
}

// NewService wires the flow to an explicitly constructed sink. limiter may be nil.
func NewService(s Sink, limiter Limiter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sink:     s,
		limiter:  limiter,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// OnTransition registers a hook called on every state change.
func (s *Service) OnTransition(f func(formID string, from, to State)) {
	s.mu.Lock()
	s.onTransition = f
	s.mu.Unlock()
}

// NewFormID issues an identifier for a freshly rendered form.
func NewFormID() string {
	return uuid.New().String()
}

// Submit validates req and, when valid, stores it. It never returns an
// error: every failure is folded into the Outcome's notice.
func (s *Service) Submit(ctx context.Context, req Request) Outcome {
	in := req.Input.Normalize()
	formID := req.FormID
	if formID == "" {
		formID = NewFormID()
	}

	out := Outcome{State: StateIdle, Input: in, FormID: formID}

	if errs := in.Validate(); len(errs) > 0 {
		out.Errors = errs
		return out
	}

	if !s.acquire(formID) {
		out.Notice = notify.Error(MsgBusy)
		return out
	}
	defer s.release(formID)

	if !s.allow(ctx, req.ClientKey) {
		out.Notice = notify.Warning(MsgCooldown)
		return out
	}

	s.transition(formID, StateIdle, StateSubmitting)

	sub := &sink.Submission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	err := s.sink.Insert(ctx, sub)

	s.transition(formID, StateSubmitting, StateSettled)
	out.Settled = true

	if err != nil {
		out.Kind = sink.KindOf(err)
		out.Notice = notify.Error(failureMessage(err))
		s.logger.Error("contact submission failed",
			"form_id", formID,
			"kind", out.Kind.String(),
			"error", err,
		)
		if out.Kind == sink.KindConfig || out.Kind == sink.KindNetwork {
			s.releaseCooldown(ctx, req.ClientKey)
		}
	} else {
		out.Success = true
		out.Reset = true
		out.Input = Input{}
		out.FormID = NewFormID()
		out.Notice = notify.Success(MsgSuccess)
		s.logger.Info("contact submission stored",
			"form_id", formID,
			"submission_id", sub.ID,
		)
	}

	s.transition(formID, StateSettled, StateIdle)
	return out
}

func failureMessage(err error) string {
	switch sink.KindOf(err) {
	case sink.KindConfig:
		return MsgConfig
	case sink.KindNetwork:
		return MsgNetwork
	}
	if msg := sink.MessageOf(err); msg != "" {
		return msg
	}
	return MsgFallback
}

func (s *Service) acquire(formID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[formID]; busy {
		return false
	}
	s.inflight[formID] = struct{}{}
	return true
}

func (s *Service) release(formID string) {
	s.mu.Lock()
	delete(s.inflight, formID)
	s.mu.Unlock()
}

// Submitting reports whether formID has a submission in flight.
func (s *Service) Submitting(formID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[formID]
	return busy
}

// allow consults the limiter. Limiter failures let the submission through.
func (s *Service) allow(ctx context.Context, key string) bool {
	if s.limiter == nil || key == "" {
		return true
	}
	ok, err := s.limiter.Allow(ctx, key)
	if err != nil {
		s.logger.Warn("cooldown unavailable, allowing submission", "error", err)
		return true
	}
	return ok
}

func (s *Service) releaseCooldown(ctx context.Context, key string) {
	if s.limiter == nil || key == "" {
		return
	}
	if err := s.limiter.Release(ctx, key); err != nil {
		s.logger.Warn("cooldown release failed", "error", err)
	}
}

func (s *Service) transition(formID string, from, to State) {
	if !CanTransition(from, to) {
		s.logger.Error("illegal contact form transition", "form_id", formID, "from", from.String(), "to", to.String())
		return
	}
	s.logger.Debug("contact form transition", "form_id", formID, "from", from.String(), "to", to.String())
	s.mu.Lock()
	hook := s.onTransition
	s.mu.Unlock()
	if hook != nil {
		hook(formID, from, to)
	}
}
