// Package notify carries transient, auto-dismissing notices to the browser.
package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultDuration is how long a notice stays on screen.
const DefaultDuration = 4 * time.Second

// Event is the HTMX event name the browser script listens for.
const Event = "notify"

type Notice struct {
	Level    Level
	Message  string
	Duration time.Duration
}

func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg, Duration: DefaultDuration} }

func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg, Duration: DefaultDuration} }

func Warning(msg string) Notice { return Notice{Level: LevelWarning, Message: msg, Duration: DefaultDuration} }

func Info(msg string) Notice { return Notice{Level: LevelInfo, Message: msg, Duration: DefaultDuration} }

// IsZero reports an empty notice, used when an outcome has nothing to say.
func (n Notice) IsZero() bool { return n.Message == "" }

type wireNotice struct {
	Level      Level  `json:"level"`
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}

// Trigger encodes notices as an HX-Trigger header value:
// {"notify": {"notices": [...]}}. Zero notices are skipped; the result is
// empty when nothing remains.
func Trigger(notices ...Notice) (string, error) {
	wire := make([]wireNotice, 0, len(notices))
	for _, n := range notices {
		if n.IsZero() {
			continue
		}
		d := n.Duration
		if d <= 0 {
			d = DefaultDuration
		}
		wire = append(wire, wireNotice{Level: n.Level, Message: n.Message, DurationMS: d.Milliseconds()})
	}
	if len(wire) == 0 {
		return "", nil
	}

	b, err := json.Marshal(map[string]any{Event: map[string]any{"notices": wire}})
	if err != nil {
		return "", fmt.Errorf("encode notices: %w", err)
	}
	return string(b), nil
}
