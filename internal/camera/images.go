package camera

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultImageDir is where the camera stores captures.
const DefaultImageDir = "/DCIM/100OLYMP"

// ImageEntry is one row of the camera's image listing.
type ImageEntry struct {
	Dir  string
	Name string
	Size int64
	Attr int
}

// Path returns the full on-camera path, as expected by the screennail
// and thumbnail endpoints.
func (e ImageEntry) Path() string {
	return e.Dir + "/" + e.Name
}

// ListImages lists the images in the given on-camera directory. The
// camera must be in play mode.
//
// The response is a version line followed by CSV rows:
//
//	VER_100
//	/DCIM/100OLYMP,P1010001.JPG,2153124,0,18573,31328
//
// Fields after the attribute (DOS-encoded date and time) are ignored.
func (c *Client) ListImages(ctx context.Context, dir string) ([]ImageEntry, error) {
	if dir == "" {
		dir = DefaultImageDir
	}

	body, err := c.get(ctx, "/get_imglist.cgi", url.Values{"DIR": {dir}})
	if err != nil {
		return nil, err
	}

	var entries []ImageEntry
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "VER_") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			return nil, fmt.Errorf("malformed image list row: %q", line)
		}

		size, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad size in image list row %q: %w", line, err)
		}
		attr, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("bad attribute in image list row %q: %w", line, err)
		}

		entries = append(entries, ImageEntry{
			Dir:  fields[0],
			Name: fields[1],
			Size: size,
			Attr: attr,
		})
	}

	return entries, nil
}
