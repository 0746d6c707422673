package wake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records every write attempt and its timestamp, and can
// be told to fail the nth call.
type fakeTransport struct {
	calls   [][]byte
	times   []time.Time
	failAt  int // 1-based call number that fails, 0 = never
	failErr error
}

func (f *fakeTransport) Write(p []byte) error {
	buf := make([]byte, len(p))
	copy(buf, p)
	f.calls = append(f.calls, buf)
	f.times = append(f.times, time.Now())

	if f.failAt == len(f.calls) {
		return f.failErr
	}
	return nil
}

func TestRunWithPasscode(t *testing.T) {
	tr := &fakeTransport{}
	seq := NewSequencer()
	seq.Delay = 50 * time.Millisecond

	res, err := seq.Run(context.Background(), tr, "123456")
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.True(t, res.AuthWritten)
	assert.True(t, res.PowerWritten)

	require.Len(t, tr.calls, 2)
	wantAuth, err := BuildPasscodeFrame("123456")
	require.NoError(t, err)
	assert.Equal(t, wantAuth, tr.calls[0])
	assert.Equal(t, PowerOnFrame(), tr.calls[1])

	gap := tr.times[1].Sub(tr.times[0])
	assert.GreaterOrEqual(t, gap, seq.Delay, "power-on written before the delay elapsed")
}

func TestRunWithoutPasscode(t *testing.T) {
	tr := &fakeTransport{}
	seq := NewSequencer()
	seq.Delay = time.Second

	start := time.Now()
	res, err := seq.Run(context.Background(), tr, "")
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.False(t, res.AuthWritten)
	assert.True(t, res.PowerWritten)

	require.Len(t, tr.calls, 1)
	assert.Equal(t, PowerOnFrame(), tr.calls[0])
	assert.Less(t, time.Since(start), 500*time.Millisecond, "no delay expected without a passcode")
}

func TestRunAuthWriteFails(t *testing.T) {
	writeErr := errors.New("gatt write rejected")
	tr := &fakeTransport{failAt: 1, failErr: writeErr}
	seq := NewSequencer()
	seq.Delay = 10 * time.Millisecond

	res, err := seq.Run(context.Background(), tr, "123456")
	require.Error(t, err)

	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, StageAuth, trErr.Stage)
	assert.ErrorIs(t, err, writeErr)

	assert.Equal(t, StateFailed, res.State)
	assert.False(t, res.AuthWritten)
	assert.False(t, res.PowerWritten)
	assert.Len(t, tr.calls, 1, "power-on must never be attempted after a failed auth write")
}

func TestRunPowerWriteFails(t *testing.T) {
	writeErr := errors.New("disconnected")
	tr := &fakeTransport{failAt: 2, failErr: writeErr}
	seq := NewSequencer()
	seq.Delay = 10 * time.Millisecond

	res, err := seq.Run(context.Background(), tr, "123456")
	require.Error(t, err)

	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, StagePowerOn, trErr.Stage)

	// Partial success: auth reached the camera, power-on did not.
	assert.Equal(t, StateFailed, res.State)
	assert.True(t, res.AuthWritten)
	assert.False(t, res.PowerWritten)
	assert.Len(t, tr.calls, 2)
}

func TestRunCancelledDuringWait(t *testing.T) {
	tr := &fakeTransport{}
	seq := NewSequencer()
	seq.Delay = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	res, err := seq.Run(ctx, tr, "123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, StateFailed, res.State)
	assert.True(t, res.AuthWritten)
	assert.False(t, res.PowerWritten)
	assert.Len(t, tr.calls, 1, "cancellation must not skip ahead to the power-on write")
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunBadPasscodeNeverTouchesTransport(t *testing.T) {
	tr := &fakeTransport{}
	seq := NewSequencer()

	res, err := seq.Run(context.Background(), tr, "Ā")
	require.Error(t, err)

	var encErr *EncodingError
	assert.ErrorAs(t, err, &encErr)
	assert.Equal(t, StateFailed, res.State)
	assert.Empty(t, tr.calls)
}
