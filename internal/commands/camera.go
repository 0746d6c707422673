package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openair/airwake/internal/camera"
)

// CameraMode switches the camera mode.
func CameraMode(client *camera.Client, mode string) error {
	if err := client.SwitchMode(context.Background(), mode); err != nil {
		return err
	}
	fmt.Printf("Camera switched to %s mode.\n", mode)
	return nil
}

// Shoot takes a single picture: switch to rec mode, settle, full
// shutter press.
func Shoot(client *camera.Client) error {
	ctx := context.Background()

	if err := client.SwitchToRec(ctx, ""); err != nil {
		return err
	}
	// The camera needs a moment after a mode switch before it accepts
	// take commands.
	time.Sleep(time.Second)

	if err := client.TakePicture(ctx); err != nil {
		return err
	}

	fmt.Println("Picture taken.")
	return nil
}

// ListImages prints the images in the given on-camera directory.
func ListImages(client *camera.Client, dir string) error {
	ctx := context.Background()

	if err := client.SwitchMode(ctx, camera.ModePlay); err != nil {
		return err
	}

	entries, err := client.ListImages(ctx, dir)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No images on camera.")
		return nil
	}

	fmt.Printf("Found %d image(s):\n\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %-16s  %10d bytes\n", e.Name, e.Size)
	}
	return nil
}

// Screennail downloads the screennail (or thumbnail) rendition of an
// image. With an empty path the most recent image is used. The JPEG is
// written to output.
func Screennail(client *camera.Client, path, output string, thumbnail bool) error {
	ctx := context.Background()

	if err := client.SwitchMode(ctx, camera.ModePlay); err != nil {
		return err
	}

	if path == "" {
		entries, err := client.ListImages(ctx, "")
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no images on camera")
		}
		path = entries[len(entries)-1].Path()
		fmt.Printf("Using most recent image: %s\n", path)
	}

	var data []byte
	var err error
	if thumbnail {
		data, err = client.Thumbnail(ctx, path)
	} else {
		data, err = client.Screennail(ctx, path)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Saved %d bytes to %s\n", len(data), output)
	return nil
}

// CommandList dumps the camera's command description XML.
func CommandList(client *camera.Client) error {
	xml, err := client.CommandList(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(xml)
	return nil
}
