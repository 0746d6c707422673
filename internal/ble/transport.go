package ble

import (
	"fmt"

	"github.com/openair/airwake/internal/config"
	"github.com/openair/airwake/internal/util"

	"tinygo.org/x/bluetooth"
)

// Characteristic adapts a GATT characteristic to the wake.Transport
// interface: one frame per Write call.
type Characteristic struct {
	char *bluetooth.DeviceCharacteristic
}

// NewCharacteristic wraps the camera's wake characteristic.
func NewCharacteristic(char *bluetooth.DeviceCharacteristic) *Characteristic {
	return &Characteristic{char: char}
}

// Write sends a single frame to the camera.
func (c *Characteristic) Write(p []byte) error {
	config.Debugf("Writing %d bytes to wake characteristic...", len(p))
	if config.Verbose {
		util.PrintHexDump(p)
	}

	// tinygo bluetooth on Linux doesn't support Write with Response
	// (only WriteWithoutResponse), see
	// https://github.com/tinygo-org/bluetooth/issues/153. The official
	// app uses Write Request (0x12); the camera accepts both.
	n, err := c.char.WriteWithoutResponse(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(p))
	}

	config.Debugf("Write completed")
	return nil
}
