package main

import (
	"github.com/alecthomas/kong"

	"github.com/openair/airwake/internal/cli"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("airwake"),
		kong.Description("Power on and control an Olympus Air camera over BLE and WiFi."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&root)
	ctx.FatalIfErrorf(err)
}
