// Package sink defines the contact submission record and the error taxonomy
// shared by every backend that stores it.
package sink

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"time"
)

// Table is the default destination of contact submissions.
const Table = "contact_submissions"

// Submission is one contact form row. ID and CreatedAt are filled by the
// backend when it reports them.
type Submission struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type Kind uint8

const (
	KindUnknown Kind = iota
	// KindConfig means the backend is not configured; no request was made.
	KindConfig
	// KindNetwork covers connectivity failures before a response arrived.
	KindNetwork
	// KindRemote is a response from the backend rejecting the insert.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Error is returned by backends. Message is safe to show to the sender.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return fmt.Sprintf("sink %s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("sink %s %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotConfigured is wrapped by every KindConfig error.
var ErrNotConfigured = errors.New("backend configuration is missing")

// NotConfigured builds a KindConfig error naming what is missing.
func NotConfigured(op, what string) error {
	return &Error{
		Kind:    KindConfig,
		Op:      op,
		Message: fmt.Sprintf("%s: %s", ErrNotConfigured, what),
		Err:     ErrNotConfigured,
	}
}

// Network wraps a transport failure.
func Network(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// Remote wraps a rejection reported by the backend.
func Remote(op, message string, err error) error {
	return &Error{Kind: KindRemote, Op: op, Message: message, Err: err}
}

// KindOf classifies err. Tagged errors keep their kind; untagged transport
// errors are recognised as network failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindConfig
	}
	if IsNetwork(err) {
		return KindNetwork
	}
	return KindUnknown
}

// IsNetwork reports connectivity failures: timeouts, refused or reset
// connections, DNS errors, and dead driver connections.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// MessageOf returns the sender-facing message carried by err, if any.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

// Unconfigured is a backend with nothing to talk to. Every insert fails with
// KindConfig.
type Unconfigured struct {
	Reason string
}

func (u Unconfigured) Insert(_ context.Context, _ *Submission) error {
	return NotConfigured("insert", u.Reason)
}
