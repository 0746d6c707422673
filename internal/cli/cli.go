package cli

import (
	"time"

	"github.com/openair/airwake/internal/ble"
	"github.com/openair/airwake/internal/camera"
	"github.com/openair/airwake/internal/commands"
	"github.com/openair/airwake/internal/config"
	"github.com/openair/airwake/internal/tui"
)

// CLI is the root command structure for airwake.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose debug output"`

	// Default command - TUI
	Tui TuiCmd `cmd:"" default:"withargs" help:"Launch interactive wake TUI (default)"`

	Wake   WakeCmd   `cmd:"" help:"Power on the camera over BLE"`
	Camera CameraCmd `cmd:"" help:"Control the powered-on camera over WiFi"`
	Debug  DebugCmd  `cmd:"" help:"Debug and development tools"`
}

// --- TUI Command ---

type TuiCmd struct {
	Passcode string        `short:"p" help:"BLE passcode paired with the camera"`
	Delay    time.Duration `default:"2.5s" help:"Pause between the passcode and power-on writes"`
}

func (c *TuiCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return tui.Run(c.Passcode, c.Delay)
}

// --- Wake Command ---

type WakeCmd struct {
	Passcode string        `short:"p" help:"BLE passcode paired with the camera (omit to send the power-on frame only)"`
	Delay    time.Duration `default:"2.5s" help:"Pause between the passcode and power-on writes"`
	Name     string        `default:"air-a01" help:"Advertised device name prefix to scan for"`
	Address  string        `help:"Connect by BLE address instead of name"`
}

func (c *WakeCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	device := ble.Connect(ble.ConnectOptions{Name: c.Name, Address: c.Address})
	defer device.Disconnect()
	return commands.Wake(device, c.Passcode, c.Delay)
}

// --- Camera Commands ---

type CameraCmd struct {
	Host string `default:"192.168.0.10" help:"Camera address on its WiFi access point"`

	Mode       CameraModeCmd       `cmd:"" help:"Switch camera mode"`
	Shoot      CameraShootCmd      `cmd:"" help:"Take a picture"`
	Images     CameraImagesCmd     `cmd:"" help:"List images on the camera"`
	Screennail CameraScreennailCmd `cmd:"" help:"Download an image's screennail JPEG"`
	Thumbnail  CameraThumbnailCmd  `cmd:"" help:"Download an image's thumbnail JPEG"`
	Commands   CameraCommandsCmd   `cmd:"" help:"Dump the camera's command list XML"`
}

type CameraModeCmd struct {
	Mode string `arg:"" enum:"rec,play,shutter" help:"Target mode (rec, play or shutter)"`
}

func (c *CameraModeCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return commands.CameraMode(camera.New(globals.Camera.Host), c.Mode)
}

type CameraShootCmd struct{}

func (c *CameraShootCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return commands.Shoot(camera.New(globals.Camera.Host))
}

type CameraImagesCmd struct {
	Dir string `arg:"" optional:"" help:"On-camera directory (default /DCIM/100OLYMP)"`
}

func (c *CameraImagesCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return commands.ListImages(camera.New(globals.Camera.Host), c.Dir)
}

type CameraScreennailCmd struct {
	Path   string `arg:"" optional:"" help:"Full on-camera image path (default: most recent image)"`
	Output string `short:"o" default:"screennail.jpg" help:"Output file path"`
}

func (c *CameraScreennailCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return commands.Screennail(camera.New(globals.Camera.Host), c.Path, c.Output, false)
}

type CameraThumbnailCmd struct {
	Path   string `arg:"" optional:"" help:"Full on-camera image path (default: most recent image)"`
	Output string `short:"o" default:"thumbnail.jpg" help:"Output file path"`
}

func (c *CameraThumbnailCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return commands.Screennail(camera.New(globals.Camera.Host), c.Path, c.Output, true)
}

type CameraCommandsCmd struct{}

func (c *CameraCommandsCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	return commands.CommandList(camera.New(globals.Camera.Host))
}

// --- Debug Commands ---

type DebugCmd struct {
	Frames  DebugFramesCmd  `cmd:"" help:"Print the wake frames without connecting"`
	Explore DebugExploreCmd `cmd:"" help:"List all BLE services and characteristics"`
}

type DebugFramesCmd struct {
	Passcode string `short:"p" help:"Passcode to encode in the auth frame"`
}

func (c *DebugFramesCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	commands.Frames(c.Passcode)
	return nil
}

type DebugExploreCmd struct {
	Name    string `default:"air-a01" help:"Advertised device name prefix to scan for"`
	Address string `help:"Connect by BLE address instead of name"`
}

func (c *DebugExploreCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	device := ble.Connect(ble.ConnectOptions{Name: c.Name, Address: c.Address})
	defer device.Disconnect()
	ble.Explore(device)
	return nil
}
