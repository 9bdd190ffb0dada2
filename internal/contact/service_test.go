package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/sink"
	"github.com/Zachkp/portfolio/internal/sink/supabase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSink struct {
	mu    sync.Mutex
	calls []sink.Submission
	err   error
}

func (f *fakeSink) Insert(_ context.Context, s *sink.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, *s)
	if f.err != nil {
		return f.err
	}
	s.ID = "row-1"
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type countingTransport struct {
	hits atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.hits.Add(1)
	return nil, errors.New("unexpected request")
}

type fakeLimiter struct {
	allow    bool
	err      error
	released []string
}

func (f *fakeLimiter) Allow(context.Context, string) (bool, error) { return f.allow, f.err }

func (f *fakeLimiter) Release(_ context.Context, key string) error {
	f.released = append(f.released, key)
	return nil
}

func TestSubmit_Success(t *testing.T) {
	fs := &fakeSink{}
	svc := NewService(fs, nil, discardLogger())

	var steps []State
	svc.OnTransition(func(_ string, _, to State) { steps = append(steps, to) })

	out := svc.Submit(context.Background(), Request{FormID: "form-1", Input: validInput()})

	assert.True(t, out.Success)
	assert.True(t, out.Settled)
	assert.True(t, out.Reset)
	assert.Equal(t, StateIdle, out.State)
	assert.Equal(t, Input{}, out.Input, "fields are cleared")
	assert.NotEqual(t, "form-1", out.FormID, "a reset form gets a fresh id")
	assert.Equal(t, notify.LevelSuccess, out.Notice.Level)
	assert.Equal(t, MsgSuccess, out.Notice.Message)
	assert.Equal(t, []State{StateSubmitting, StateSettled, StateIdle}, steps)

	require.Equal(t, 1, fs.count())
	assert.Equal(t, sink.Submission{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Hello",
		Message: "This is a test message.",
	}, fs.calls[0])
	assert.False(t, svc.Submitting("form-1"))
}

func TestSubmit_ValidationFailureMakesNoCall(t *testing.T) {
	fs := &fakeSink{}
	svc := NewService(fs, nil, discardLogger())

	var steps []State
	svc.OnTransition(func(_ string, _, to State) { steps = append(steps, to) })

	in := validInput()
	in.Email = "not-an-email"
	out := svc.Submit(context.Background(), Request{FormID: "form-1", Input: in})

	assert.False(t, out.Settled)
	assert.Equal(t, StateIdle, out.State)
	assert.Equal(t, "Please enter a valid email address.", out.Errors["email"])
	assert.True(t, out.Notice.IsZero())
	assert.Equal(t, in, out.Input)
	assert.Equal(t, "form-1", out.FormID)
	assert.Zero(t, fs.count())
	assert.Empty(t, steps)
}

func TestSubmit_MissingConfigurationMakesNoNetworkAttempt(t *testing.T) {
	transport := &countingTransport{}
	client := supabase.New(supabase.Config{}).WithHTTPClient(&http.Client{Transport: transport})
	svc := NewService(client, nil, discardLogger())

	out := svc.Submit(context.Background(), Request{FormID: "form-1", Input: validInput()})

	assert.Zero(t, transport.hits.Load())
	assert.False(t, out.Success)
	assert.False(t, out.Reset)
	assert.Equal(t, sink.KindConfig, out.Kind)
	assert.Equal(t, notify.LevelError, out.Notice.Level)
	assert.Equal(t, MsgConfig, out.Notice.Message)
	assert.Equal(t, validInput(), out.Input, "fields are kept")
	assert.Equal(t, "form-1", out.FormID)
	assert.Equal(t, StateIdle, out.State)
}

func TestSubmit_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind sink.Kind
		want string
	}{
		{"network", sink.Network("insert", errors.New("dial tcp: connection refused")), sink.KindNetwork, MsgNetwork},
		{"untagged timeout", context.DeadlineExceeded, sink.KindNetwork, MsgNetwork},
		{"remote with message", sink.Remote("insert", "duplicate key value", nil), sink.KindRemote, "duplicate key value"},
		{"remote without message", sink.Remote("insert", "", errors.New("status 500")), sink.KindRemote, MsgFallback},
		{"unknown", errors.New("weird"), sink.KindUnknown, MsgFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeSink{err: tt.err}, nil, discardLogger())

			out := svc.Submit(context.Background(), Request{FormID: "f", Input: validInput()})

			assert.True(t, out.Settled)
			assert.False(t, out.Success)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.want, out.Notice.Message)
			assert.Equal(t, validInput(), out.Input)
			assert.Equal(t, StateIdle, out.State)
		})
	}
}

type blockingSink struct {
	entered chan struct{}
	unblock chan struct{}
}

func (b *blockingSink) Insert(ctx context.Context, _ *sink.Submission) error {
	close(b.entered)
	<-b.unblock
	return nil
}

func TestSubmit_RejectsConcurrentSubmitOfSameForm(t *testing.T) {
	bs := &blockingSink{entered: make(chan struct{}), unblock: make(chan struct{})}
	svc := NewService(bs, nil, discardLogger())

	done := make(chan Outcome, 1)
	go func() {
		done <- svc.Submit(context.Background(), Request{FormID: "form-1", Input: validInput()})
	}()

	select {
	case <-bs.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the sink")
	}
	assert.True(t, svc.Submitting("form-1"))

	second := svc.Submit(context.Background(), Request{FormID: "form-1", Input: validInput()})
	assert.False(t, second.Settled)
	assert.Equal(t, MsgBusy, second.Notice.Message)
	assert.Equal(t, validInput(), second.Input)

	close(bs.unblock)
	first := <-done
	assert.True(t, first.Success)
	assert.False(t, svc.Submitting("form-1"))
}

func TestSubmit_Cooldown(t *testing.T) {
	t.Run("blocked", func(t *testing.T) {
		fs := &fakeSink{}
		svc := NewService(fs, &fakeLimiter{allow: false}, discardLogger())

		out := svc.Submit(context.Background(), Request{FormID: "f", ClientKey: "k", Input: validInput()})

		assert.Zero(t, fs.count())
		assert.Equal(t, MsgCooldown, out.Notice.Message)
		assert.Equal(t, notify.LevelWarning, out.Notice.Level)
		assert.Equal(t, validInput(), out.Input)
	})

	t.Run("limiter down lets it through", func(t *testing.T) {
		fs := &fakeSink{}
		svc := NewService(fs, &fakeLimiter{err: errors.New("redis down")}, discardLogger())

		out := svc.Submit(context.Background(), Request{FormID: "f", ClientKey: "k", Input: validInput()})

		assert.True(t, out.Success)
		assert.Equal(t, 1, fs.count())
	})

	t.Run("config failure releases the window", func(t *testing.T) {
		lim := &fakeLimiter{allow: true}
		svc := NewService(sink.Unconfigured{Reason: "DATABASE_URL"}, lim, discardLogger())

		out := svc.Submit(context.Background(), Request{FormID: "f", ClientKey: "k", Input: validInput()})

		assert.Equal(t, MsgConfig, out.Notice.Message)
		assert.Equal(t, []string{"k"}, lim.released)
	})

	t.Run("no client key skips the limiter", func(t *testing.T) {
		fs := &fakeSink{}
		svc := NewService(fs, &fakeLimiter{allow: false}, discardLogger())

		out := svc.Submit(context.Background(), Request{FormID: "f", Input: validInput()})

		assert.True(t, out.Success)
	})
}

func TestSubmit_AssignsFormIDWhenMissing(t *testing.T) {
	svc := NewService(&fakeSink{}, nil, discardLogger())

	in := validInput()
	in.Name = ""
	out := svc.Submit(context.Background(), Request{Input: in})

	assert.NotEmpty(t, out.FormID)
}

func TestOnTransition_SafeAlongsideSubmit(t *testing.T) {
	svc := NewService(&fakeSink{}, nil, discardLogger())

	var seen atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.OnTransition(func(string, State, State) { seen.Add(1) })
		}()
		go func() {
			defer wg.Done()
			out := svc.Submit(context.Background(), Request{Input: validInput()})
			assert.True(t, out.Success)
		}()
	}
	wg.Wait()

	svc.OnTransition(func(string, State, State) { seen.Add(1) })
	before := seen.Load()
	svc.Submit(context.Background(), Request{Input: validInput()})
	assert.Equal(t, before+3, seen.Load())
}
