package commands

import (
	"fmt"
	"log"

	"github.com/openair/airwake/internal/util"
	"github.com/openair/airwake/internal/wake"
)

// Frames prints the wire frames for a passcode without touching any
// hardware. Useful for comparing against BLE captures.
func Frames(passcode string) {
	if passcode != "" {
		frame, err := wake.BuildPasscodeFrame(passcode)
		if err != nil {
			log.Fatal("Failed to build passcode frame: ", err)
		}
		fmt.Printf("Passcode frame (%d bytes): %s\n", len(frame), util.HexString(frame))
		util.PrintHexDump(frame)
		fmt.Println()
	}

	frame := wake.PowerOnFrame()
	fmt.Printf("Power-on frame (%d bytes): %s\n", len(frame), util.HexString(frame))
	util.PrintHexDump(frame)
}
