package camera

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer captures every request and serves canned responses
// per path.
type recordingServer struct {
	*httptest.Server
	requests  []string // "path?rawquery" in arrival order
	agents    []string
	responses map[string]string
	status    int
}

func newRecordingServer(t *testing.T) *recordingServer {
	t.Helper()

	rs := &recordingServer{
		responses: map[string]string{},
		status:    http.StatusOK,
	}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := r.URL.Path
		if r.URL.RawQuery != "" {
			req += "?" + r.URL.RawQuery
		}
		rs.requests = append(rs.requests, req)
		rs.agents = append(rs.agents, r.Header.Get("User-Agent"))

		if rs.status != http.StatusOK {
			http.Error(w, "camera says no", rs.status)
			return
		}
		w.Write([]byte(rs.responses[r.URL.Path]))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) client() *Client {
	return New(strings.TrimPrefix(rs.URL, "http://"))
}

func TestSwitchMode(t *testing.T) {
	srv := newRecordingServer(t)

	err := srv.client().SwitchMode(context.Background(), ModePlay)
	require.NoError(t, err)

	require.Len(t, srv.requests, 1)
	assert.Equal(t, "/switch_cammode.cgi?mode=play", srv.requests[0])
	assert.Equal(t, "OlympusCameraKit", srv.agents[0])
}

func TestSwitchToRecWithQuality(t *testing.T) {
	srv := newRecordingServer(t)

	err := srv.client().SwitchToRec(context.Background(), "0640x0480")
	require.NoError(t, err)

	require.Len(t, srv.requests, 1)
	assert.Equal(t, "/switch_cammode.cgi?lvqty=0640x0480&mode=rec", srv.requests[0])
}

func TestTakePictureOrder(t *testing.T) {
	srv := newRecordingServer(t)

	err := srv.client().TakePicture(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/exec_takemotion.cgi?com=starttake",
		"/exec_takemotion.cgi?com=stoptake",
	}, srv.requests)
}

func TestListImages(t *testing.T) {
	srv := newRecordingServer(t)
	srv.responses["/get_imglist.cgi"] = "VER_100\r\n" +
		"/DCIM/100OLYMP,P1010001.JPG,2153124,0,18573,31328\r\n" +
		"/DCIM/100OLYMP,P1010002.ORF,15872944,0,18573,31330\r\n"

	entries, err := srv.client().ListImages(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, ImageEntry{Dir: "/DCIM/100OLYMP", Name: "P1010001.JPG", Size: 2153124}, entries[0])
	assert.Equal(t, "/DCIM/100OLYMP/P1010001.JPG", entries[0].Path())
	assert.Equal(t, "P1010002.ORF", entries[1].Name)

	require.Len(t, srv.requests, 1)
	assert.Equal(t, "/get_imglist.cgi?DIR=%2FDCIM%2F100OLYMP", srv.requests[0])
}

func TestListImagesMalformedRow(t *testing.T) {
	srv := newRecordingServer(t)
	srv.responses["/get_imglist.cgi"] = "VER_100\n/DCIM/100OLYMP,broken\n"

	_, err := srv.client().ListImages(context.Background(), "")
	assert.ErrorContains(t, err, "malformed image list row")
}

func TestScreennail(t *testing.T) {
	srv := newRecordingServer(t)
	srv.responses["/get_screennail.cgi"] = "\xff\xd8jpeg-bytes"

	data, err := srv.client().Screennail(context.Background(), "/DCIM/100OLYMP/P1010001.JPG")
	require.NoError(t, err)
	assert.Equal(t, []byte("\xff\xd8jpeg-bytes"), data)

	require.Len(t, srv.requests, 1)
	assert.Equal(t, "/get_screennail.cgi?DIR=%2FDCIM%2F100OLYMP%2FP1010001.JPG", srv.requests[0])
}

func TestErrorStatusIncludesBody(t *testing.T) {
	srv := newRecordingServer(t)
	srv.status = http.StatusServiceUnavailable

	err := srv.client().SwitchMode(context.Background(), ModeRec)
	require.Error(t, err)
	assert.ErrorContains(t, err, "503")
	assert.ErrorContains(t, err, "camera says no")
}
