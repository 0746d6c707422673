package wake

import (
	"context"
	"fmt"
	"time"
)

// DefaultDelay is the pause between the passcode write and the power-on
// write. The camera ignores a power-on frame that arrives too soon after
// authentication; 2.5s is the empirically safe value. Real hardware
// tolerances vary, so the delay stays configurable.
const DefaultDelay = 2500 * time.Millisecond

// Transport writes one frame per call to the camera's wake
// characteristic. The underlying connection must not be shared with
// another writer while a sequence is in flight: the camera's protocol
// state depends on strict frame ordering.
type Transport interface {
	Write(p []byte) error
}

// State identifies where a power-on sequence is, or where it stopped.
type State int

const (
	StateStart State = iota
	StateAuthWrite
	StateWaiting
	StatePowerWrite
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAuthWrite:
		return "auth-write"
	case StateWaiting:
		return "waiting"
	case StatePowerWrite:
		return "power-write"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Stage names the frame a transport write was carrying.
type Stage string

const (
	StageAuth    Stage = "auth"
	StagePowerOn Stage = "power-on"
)

// TransportError wraps a failed characteristic write and records which
// frame it was carrying.
type TransportError struct {
	Stage Stage
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s frame write failed: %v", e.Stage, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Result reports how far a sequence got. AuthWritten without
// PowerWritten is a valid terminal outcome: the passcode frame reached
// the camera but the power-on frame was never attempted.
type Result struct {
	State        State
	AuthWritten  bool
	PowerWritten bool
}

// Sequencer drives the two-frame power-on handshake over an
// already-connected transport. It performs no retries; retry policy, if
// any, belongs to the caller.
type Sequencer struct {
	// Delay is the minimum pause between the two writes.
	Delay time.Duration
}

// NewSequencer returns a sequencer with the default inter-frame delay.
func NewSequencer() *Sequencer {
	return &Sequencer{Delay: DefaultDelay}
}

// Run executes the handshake: passcode frame, pause, power-on frame.
// With an empty passcode the passcode frame and the pause are skipped
// and only the power-on frame is written. Writes are strictly
// sequential and never reordered. Cancelling ctx during the pause
// aborts the sequence without the power-on write.
func (s *Sequencer) Run(ctx context.Context, t Transport, passcode string) (Result, error) {
	res := Result{State: StateStart}

	if passcode != "" {
		frame, err := BuildPasscodeFrame(passcode)
		if err != nil {
			res.State = StateFailed
			return res, err
		}

		res.State = StateAuthWrite
		if err := t.Write(frame); err != nil {
			res.State = StateFailed
			return res, &TransportError{Stage: StageAuth, Err: err}
		}
		res.AuthWritten = true

		res.State = StateWaiting
		if err := s.wait(ctx); err != nil {
			res.State = StateFailed
			return res, err
		}
	}

	res.State = StatePowerWrite
	if err := t.Write(PowerOnFrame()); err != nil {
		res.State = StateFailed
		return res, &TransportError{Stage: StagePowerOn, Err: err}
	}
	res.PowerWritten = true

	res.State = StateDone
	return res, nil
}

// wait blocks for the configured delay or until ctx is cancelled.
func (s *Sequencer) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("cancelled while waiting between frames: %w", ctx.Err())
	}
}
