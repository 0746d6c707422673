// Package wake builds and sequences the BLE frames that power on an
// Olympus Air camera: a passcode authentication frame followed, after a
// mandatory pause, by a fixed power-on frame.
package wake

import "fmt"

// Passcode frame layout:
//
//	[0:6]  header: 01 01 09 0c 01 02
//	[6:n]  passcode bytes (low 8 bits of each character, in order)
//	[n]    checksum: (0x0c + 0x01 + 0x02 + sum of passcode bytes) & 0xff
//	[n+1]  terminator: 00
//
// The three checksum seeds happen to match the last three header bytes,
// but they are independent constants: the 01 01 09 prefix is never part
// of the sum. Captured traffic from the official app confirms only this
// formula; whether the camera also accepts a header-inclusive sum is
// unknown.
var passcodeHeader = []byte{0x01, 0x01, 0x09, 0x0c, 0x01, 0x02}

// Checksum seed constants, summed with the passcode bytes.
const (
	checksumSeed1 = 0x0c
	checksumSeed2 = 0x01
	checksumSeed3 = 0x02
)

// powerOnFrame is reproduced byte for byte from captured traffic. The
// 0x13 at index 7 looks like a checksum but no derivation is known, so
// it is an opaque constant and never recomputed.
var powerOnFrame = []byte{0x01, 0x01, 0x04, 0x0f, 0x01, 0x01, 0x02, 0x13, 0x00}

// EncodingError reports a passcode character that does not fit in a
// single byte. The wire format has no multi-byte character encoding.
type EncodingError struct {
	Index int  // rune index within the passcode
	Rune  rune // the offending character
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("passcode character %q at index %d does not fit in one byte", e.Rune, e.Index)
}

// BuildPasscodeFrame builds the authentication frame for the given
// passcode. The frame is always 8 + len(passcode) bytes. Passcodes are
// typically six digits, but any length is encoded as-is; semantics are
// the camera's problem. A character above U+00FF yields an
// EncodingError and no frame.
func BuildPasscodeFrame(passcode string) ([]byte, error) {
	chars := []rune(passcode)

	frame := make([]byte, 0, len(passcodeHeader)+len(chars)+2)
	frame = append(frame, passcodeHeader...)

	sum := uint32(checksumSeed1 + checksumSeed2 + checksumSeed3)
	for i, r := range chars {
		if r > 0xff {
			return nil, &EncodingError{Index: i, Rune: r}
		}
		frame = append(frame, byte(r))
		sum += uint32(r)
	}

	frame = append(frame, byte(sum&0xff), 0x00)
	return frame, nil
}

// PowerOnFrame returns the fixed power-on frame. The result is a fresh
// copy each call, so callers may hand it to transports that retain or
// modify buffers.
func PowerOnFrame() []byte {
	frame := make([]byte, len(powerOnFrame))
	copy(frame, powerOnFrame)
	return frame
}
