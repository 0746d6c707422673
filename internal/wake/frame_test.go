package wake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPasscodeFrame(t *testing.T) {
	// Passcode "123456": seeds 0x0c+0x01+0x02 = 0x0f, digit bytes sum to
	// 0x135, total 0x144, masked to 0x44.
	frame, err := BuildPasscodeFrame("123456")
	require.NoError(t, err)

	want := []byte{
		0x01, 0x01, 0x09, 0x0c, 0x01, 0x02, // header
		0x31, 0x32, 0x33, 0x34, 0x35, 0x36, // "123456"
		0x44, // checksum
		0x00, // terminator
	}
	assert.Equal(t, want, frame)
}

func TestBuildPasscodeFrameLength(t *testing.T) {
	for _, passcode := range []string{"", "1", "123456", "0000000000", "\x7f\x20abc"} {
		frame, err := BuildPasscodeFrame(passcode)
		require.NoError(t, err, "passcode %q", passcode)
		assert.Len(t, frame, 8+len([]rune(passcode)), "passcode %q", passcode)
	}
}

func TestBuildPasscodeFrameChecksumWraps(t *testing.T) {
	// Six 0xff bytes sum to 0x5fa; with seeds that is 0x609, so the
	// modular mask must yield 0x09.
	frame, err := BuildPasscodeFrame("ÿÿÿÿÿÿ")
	require.NoError(t, err)
	require.Len(t, frame, 14)
	assert.Equal(t, byte(0x09), frame[12])
	assert.Equal(t, byte(0x00), frame[13])
}

func TestBuildPasscodeFrameHeaderNotSummed(t *testing.T) {
	// A single NUL passcode byte contributes nothing, leaving only the
	// three seed constants. If the 01 01 09 header prefix leaked into
	// the sum this would be 0x1a instead.
	frame, err := BuildPasscodeFrame("\x00")
	require.NoError(t, err)
	require.Len(t, frame, 9)
	assert.Equal(t, byte(0x0f), frame[7])
}

func TestBuildPasscodeFrameEncodingError(t *testing.T) {
	frame, err := BuildPasscodeFrame("12345€")
	assert.Nil(t, frame)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 5, encErr.Index)
	assert.Equal(t, '€', encErr.Rune)
}

func TestPowerOnFrame(t *testing.T) {
	want := []byte{0x01, 0x01, 0x04, 0x0f, 0x01, 0x01, 0x02, 0x13, 0x00}
	assert.Equal(t, want, PowerOnFrame())
}

func TestPowerOnFrameIsACopy(t *testing.T) {
	frame := PowerOnFrame()
	frame[7] = 0xee
	assert.Equal(t, byte(0x13), PowerOnFrame()[7])
}
