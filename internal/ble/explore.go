package ble

import (
	"fmt"
	"log"

	"github.com/openair/airwake/internal/util"

	"tinygo.org/x/bluetooth"
)

// Explore lists all services and characteristics on the connected
// camera, reading whatever is readable. Safe: nothing is written.
func Explore(device bluetooth.Device) {
	fmt.Println("Discovering services...")

	allServices, err := device.DiscoverServices(nil)
	if err != nil {
		log.Fatal("Failed to discover services:", err)
	}

	fmt.Printf("\nFound %d services:\n\n", len(allServices))

	for i, svc := range allServices {
		fmt.Printf("Service #%d: %s\n", i+1, svc.UUID().String())

		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			fmt.Printf("  Error: %v\n\n", err)
			continue
		}

		for j, char := range chars {
			fmt.Printf("  [%d] %s\n", j+1, char.UUID().String())

			buf := make([]byte, 256)
			n, err := char.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			data := buf[:n]
			if util.IsTextData(data) {
				fmt.Printf("      Value: %s\n", string(data))
			} else {
				fmt.Printf("      Value (%d bytes):\n", n)
				util.PrintHexDump(data)
			}
		}
		fmt.Println()
	}
}
