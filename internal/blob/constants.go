// internal/blob/constants.go
package blob

// Image blob header layout constants.
// These values are read by the device decoder and MUST NOT be configurable.

// ---- HEADER GEOMETRY ----

// HeaderSize is the fixed header length in bytes (three little-endian words).
const HeaderSize = 12

// ---- WORD 0 ----

// Magic occupies bits [0:8] of word0.
const Magic uint8 = 0x19

// ColorFormatARGB8888 occupies bits [8:16] of word0.
const ColorFormatARGB8888 uint8 = 0x10

// Flags occupy bits [16:32] of word0 and are always zero.
const Flags uint16 = 0

// ---- PIXELS ----

// BytesPerPixel for ARGB8888.
const BytesPerPixel = 4

// MaxDimension is the largest width, height or stride a 16-bit header field holds.
const MaxDimension = 0xFFFF
