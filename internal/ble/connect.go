package ble

import (
	"fmt"
	"log"
	"strings"

	"github.com/openair/airwake/internal/config"

	"tinygo.org/x/bluetooth"
)

// ConnectOptions selects which camera to connect to. Address wins when
// both are set; Name is matched case-insensitively as a prefix of the
// advertised local name.
type ConnectOptions struct {
	Name    string
	Address string
}

// Dial scans for and connects to the camera. The camera only advertises
// while in BLE standby (power switch on, lens cap sensor armed), so a
// scan that finds nothing usually means the camera is fully off.
func Dial(opts ConnectOptions) (bluetooth.Device, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return bluetooth.Device{}, fmt.Errorf("failed to enable Bluetooth: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	nameLower := strings.ToLower(name)
	addrLower := strings.ToLower(opts.Address)

	fmt.Println("Scanning for camera...")

	var deviceResult bluetooth.ScanResult
	var found bool

	err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		localName := result.LocalName()
		address, _ := result.Address.MarshalText()

		if config.Verbose && localName != "" {
			fmt.Printf("  Found: '%s' (%s)\n", localName, string(address))
		}

		if addrLower != "" {
			if strings.ToLower(string(address)) != addrLower {
				return
			}
		} else if !strings.HasPrefix(strings.ToLower(localName), nameLower) {
			return
		}

		deviceResult = result
		found = true
		adapter.StopScan()
	})
	if err != nil {
		return bluetooth.Device{}, fmt.Errorf("scan error: %w", err)
	}

	if !found {
		return bluetooth.Device{}, fmt.Errorf("camera not found (is it in BLE standby?)")
	}

	address, _ := deviceResult.Address.MarshalText()
	fmt.Printf("Connecting to %s...\n", string(address))

	device, err := adapter.Connect(deviceResult.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return bluetooth.Device{}, fmt.Errorf("failed to connect: %w", err)
	}

	fmt.Println("Connected!")
	return device, nil
}

// Connect is Dial for one-shot CLI commands: any failure is fatal.
func Connect(opts ConnectOptions) bluetooth.Device {
	device, err := Dial(opts)
	if err != nil {
		log.Fatal(err)
	}
	return device
}

// WakeCharacteristic discovers the power control service and returns
// its wake characteristic.
func WakeCharacteristic(device bluetooth.Device) (*bluetooth.DeviceCharacteristic, error) {
	config.Debugf("Discovering services...")

	allServices, err := device.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to discover services: %w", err)
	}

	var powerService *bluetooth.DeviceService
	for i := range allServices {
		uuidStr := allServices[i].UUID().String()
		if strings.EqualFold(uuidStr, CameraServiceUUID) {
			powerService = &allServices[i]
			config.Debugf("Found power control service: %s", uuidStr)
			break
		}
	}

	if powerService == nil {
		return nil, fmt.Errorf("power control service not found")
	}

	chars, err := powerService.DiscoverCharacteristics(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	for i := range chars {
		uuidStr := chars[i].UUID().String()
		config.Debugf("Found characteristic: %s", uuidStr)
		if strings.EqualFold(uuidStr, WakeCharUUID) {
			return &chars[i], nil
		}
	}

	return nil, fmt.Errorf("wake characteristic not found")
}
