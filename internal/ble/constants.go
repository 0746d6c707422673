package ble

const (
	// CameraServiceUUID is the camera's power control service.
	CameraServiceUUID = "0391D26E-625B-4736-B7D6-51A1F38EDBA5"

	// WakeCharUUID is the characteristic that accepts the passcode and
	// power-on frames. Write-only; the camera never notifies on it.
	WakeCharUUID = "D15464DA-DE00-41D4-BEC8-7C2B2CC8B2EE"

	// DefaultName is the advertised local name prefix of an Olympus Air
	// in BLE standby (e.g. "AIR-A01-123456789").
	DefaultName = "air-a01"
)
