package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger(t *testing.T) {
	raw, err := Trigger(Success("saved"), Notice{}, Notice{Level: LevelError, Message: "boom"})
	require.NoError(t, err)

	var got struct {
		Notify struct {
			Notices []struct {
				Level      string `json:"level"`
				Message    string `json:"message"`
				DurationMS int64  `json:"duration_ms"`
			} `json:"notices"`
		} `json:"notify"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	require.Len(t, got.Notify.Notices, 2)
	assert.Equal(t, "success", got.Notify.Notices[0].Level)
	assert.Equal(t, "saved", got.Notify.Notices[0].Message)
	assert.Equal(t, DefaultDuration.Milliseconds(), got.Notify.Notices[0].DurationMS)
	assert.Equal(t, "boom", got.Notify.Notices[1].Message)
	assert.Equal(t, (4 * time.Second).Milliseconds(), got.Notify.Notices[1].DurationMS)
}

func TestTrigger_NothingToSend(t *testing.T) {
	raw, err := Trigger(Notice{})

	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, LevelWarning, Warning("w").Level)
	assert.Equal(t, LevelInfo, Info("i").Level)
	assert.Equal(t, LevelError, Error("e").Level)
	assert.True(t, Notice{}.IsZero())
}
