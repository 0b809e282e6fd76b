// internal/blob/header.go
package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortHeader is returned when fewer than HeaderSize bytes are available.
var ErrShortHeader = errors.New("blob: short header")

// Header is the decoded form of the 12-byte image header.
type Header struct {
	Magic       uint8
	ColorFormat uint8
	Flags       uint16
	Width       uint16
	Height      uint16
	Stride      uint16
	Reserved    uint16
}

// EncodeHeader packs h into its wire form.
//
// Layout (little-endian words):
//
//	word0  magic(8) | cf(8)<<8 | flags(16)<<16
//	word1  w(16)    | h(16)<<16
//	word2  stride(16) | reserved(16)<<16
func EncodeHeader(h Header) [HeaderSize]byte {
	var out [HeaderSize]byte

	word0 := uint32(h.Magic) | uint32(h.ColorFormat)<<8 | uint32(h.Flags)<<16
	word1 := uint32(h.Width) | uint32(h.Height)<<16
	word2 := uint32(h.Stride) | uint32(h.Reserved)<<16

	binary.LittleEndian.PutUint32(out[0:4], word0)
	binary.LittleEndian.PutUint32(out[4:8], word1)
	binary.LittleEndian.PutUint32(out[8:12], word2)

	return out
}

// DecodeHeader unpacks the first HeaderSize bytes of b.
// It does not check the magic; callers that need a valid image use Validate.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got=%d want=%d", ErrShortHeader, len(b), HeaderSize)
	}

	word0 := binary.LittleEndian.Uint32(b[0:4])
	word1 := binary.LittleEndian.Uint32(b[4:8])
	word2 := binary.LittleEndian.Uint32(b[8:12])

	return Header{
		Magic:       uint8(word0),
		ColorFormat: uint8(word0 >> 8),
		Flags:       uint16(word0 >> 16),
		Width:       uint16(word1),
		Height:      uint16(word1 >> 16),
		Stride:      uint16(word2),
		Reserved:    uint16(word2 >> 16),
	}, nil
}

// Validate checks a decoded header describes an ARGB8888 image this tool produces.
func (h Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("blob: bad magic 0x%02x", h.Magic)
	}
	if h.ColorFormat != ColorFormatARGB8888 {
		return fmt.Errorf("blob: unsupported color format 0x%02x", h.ColorFormat)
	}
	if h.Flags != 0 || h.Reserved != 0 {
		return fmt.Errorf("blob: non-zero flags=0x%04x reserved=0x%04x", h.Flags, h.Reserved)
	}
	return nil
}

// PixelBytes is the pixel payload size the header implies.
func (h Header) PixelBytes() int {
	return int(h.Stride) * int(h.Height)
}
