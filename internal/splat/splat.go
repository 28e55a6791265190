package splat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"splatviewer/internal/math3"
)

// RecordSize is the fixed width of one encoded splat:
// position (3x f32 LE), scale (3x f32 LE), color (RGBA, 4x u8),
// rotation (quaternion components, 4x u8 encoded as (b-128)/128).
const RecordSize = 32

var (
	// ErrMalformedInput means the input buffer length is not a multiple of 32.
	ErrMalformedInput = errors.New("input length is not a multiple of 32 bytes")

	// ErrInvalidRecordSize means a single record was not exactly 32 bytes.
	// Given the length check in Decode this indicates a programming error.
	ErrInvalidRecordSize = errors.New("record is not exactly 32 bytes")
)

// Splat is a single renderable point primitive. Immutable after construction.
type Splat struct {
	Position math3.Vec3
	Scale    math3.Vec3
	Color    [4]uint8 // straight-alpha RGBA
	Rotation math3.Vec4
}

// DecodeRecord parses one 32-byte record.
func DecodeRecord(raw []byte) (Splat, error) {
	if len(raw) != RecordSize {
		return Splat{}, fmt.Errorf("%w: got %d bytes", ErrInvalidRecordSize, len(raw))
	}

	f32 := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(raw[offset:]))
	}

	var s Splat
	s.Position = math3.V3(f32(0), f32(4), f32(8))
	s.Scale = math3.V3(f32(12), f32(16), f32(20))
	s.Color = [4]uint8{raw[24], raw[25], raw[26], raw[27]}
	s.Rotation = math3.V4(
		decodeRotationByte(raw[28]),
		decodeRotationByte(raw[29]),
		decodeRotationByte(raw[30]),
		decodeRotationByte(raw[31]),
	)
	return s, nil
}

// EncodeRecord is the inverse of DecodeRecord. Position, scale and color
// round-trip exactly; rotation components are quantized to 8 bits and only
// round-trip to within 1/128.
func EncodeRecord(s Splat) [RecordSize]byte {
	var raw [RecordSize]byte

	putF32 := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(raw[offset:], math.Float32bits(v))
	}

	putF32(0, s.Position.X)
	putF32(4, s.Position.Y)
	putF32(8, s.Position.Z)
	putF32(12, s.Scale.X)
	putF32(16, s.Scale.Y)
	putF32(20, s.Scale.Z)
	raw[24], raw[25], raw[26], raw[27] = s.Color[0], s.Color[1], s.Color[2], s.Color[3]
	raw[28] = encodeRotationByte(s.Rotation.X)
	raw[29] = encodeRotationByte(s.Rotation.Y)
	raw[30] = encodeRotationByte(s.Rotation.Z)
	raw[31] = encodeRotationByte(s.Rotation.W)
	return raw
}

// decodeRotationByte maps a raw byte to an approximate signed quaternion
// component in [-1, 127/128].
func decodeRotationByte(b uint8) float32 {
	return float32(int(b)-128) / 128
}

func encodeRotationByte(c float32) uint8 {
	v := math32.Round(c*128) + 128
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v)
}
