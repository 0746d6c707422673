package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/openair/airwake/internal/ble"
	"github.com/openair/airwake/internal/wake"

	"tinygo.org/x/bluetooth"
)

// Wake runs the power-on sequence against a connected camera. With an
// empty passcode only the power-on frame is sent. Ctrl-C during the
// inter-frame wait aborts without sending the power-on frame.
func Wake(device bluetooth.Device, passcode string, delay time.Duration) error {
	char, err := ble.WakeCharacteristic(device)
	if err != nil {
		return err
	}

	seq := wake.NewSequencer()
	if delay > 0 {
		seq.Delay = delay
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if passcode != "" {
		fmt.Println("Sending passcode frame...")
	} else {
		fmt.Println("No passcode given, sending power-on frame only...")
	}

	res, err := seq.Run(ctx, ble.NewCharacteristic(char), passcode)
	if err != nil {
		if res.AuthWritten && !res.PowerWritten {
			fmt.Println("Passcode frame was written; power-on frame was not sent.")
		}
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("power-on sequence aborted: %w", err)
		}
		return err
	}

	fmt.Println("Power-on sequence complete. The camera should be booting;")
	fmt.Println("its WiFi access point takes a few seconds to come up.")
	return nil
}
