package splat

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splatviewer/internal/math3"
)

func buildRecord(position, scale [3]float32, color [4]uint8, rotation [4]uint8) []byte {
	raw := make([]byte, RecordSize)
	for i, v := range position {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	for i, v := range scale {
		binary.LittleEndian.PutUint32(raw[12+i*4:], math.Float32bits(v))
	}
	copy(raw[24:28], color[:])
	copy(raw[28:32], rotation[:])
	return raw
}

func TestDecodeRecord(t *testing.T) {
	raw := buildRecord(
		[3]float32{1.5, -2.25, 3.75},
		[3]float32{0.5, 1, 2},
		[4]uint8{244, 130, 80, 255},
		[4]uint8{128, 0, 255, 192},
	)

	s, err := DecodeRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, math3.V3(1.5, -2.25, 3.75), s.Position)
	assert.Equal(t, math3.V3(0.5, 1, 2), s.Scale)
	assert.Equal(t, [4]uint8{244, 130, 80, 255}, s.Color)

	// Rotation bytes decode as (b-128)/128.
	assert.InDelta(t, 0, s.Rotation.X, 1e-6)
	assert.InDelta(t, -1, s.Rotation.Y, 1e-6)
	assert.InDelta(t, 127.0/128, s.Rotation.Z, 1e-6)
	assert.InDelta(t, 0.5, s.Rotation.W, 1e-6)
}

func TestDecodeRecordWrongSize(t *testing.T) {
	for _, size := range []int{0, 1, 31, 33, 64} {
		_, err := DecodeRecord(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidRecordSize, "size %d", size)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	raw := buildRecord(
		[3]float32{-10.125, 0, 99.5},
		[3]float32{1, 2.5, 0.25},
		[4]uint8{0, 127, 255, 64},
		[4]uint8{0, 64, 128, 255},
	)

	s, err := DecodeRecord(raw)
	require.NoError(t, err)

	// Position, scale and color re-encode byte-exactly; the rotation bytes
	// happen to as well, because decode(b) quantizes back to b.
	encoded := EncodeRecord(s)
	assert.Equal(t, raw, encoded[:])
}

func TestRotationQuantization(t *testing.T) {
	s := Splat{Rotation: math3.V4(0.3, -0.71, 0.999, -1)}

	encoded := EncodeRecord(s)
	decoded, err := DecodeRecord(encoded[:])
	require.NoError(t, err)

	// Quantization to 8 bits loses at most 1/128 per component.
	assert.InDelta(t, s.Rotation.X, decoded.Rotation.X, 1.0/128)
	assert.InDelta(t, s.Rotation.Y, decoded.Rotation.Y, 1.0/128)
	assert.InDelta(t, s.Rotation.Z, decoded.Rotation.Z, 1.0/128)
	assert.InDelta(t, s.Rotation.W, decoded.Rotation.W, 1.0/128)
}

func TestSceneAveragePosition(t *testing.T) {
	scene := NewScene([]Splat{
		{Position: math3.V3(0, 0, 0)},
		{Position: math3.V3(2, 4, 6)},
		{Position: math3.V3(4, 2, 0)},
	})

	avg := scene.AveragePosition()
	assert.InDelta(t, 2, avg.X, 1e-6)
	assert.InDelta(t, 2, avg.Y, 1e-6)
	assert.InDelta(t, 2, avg.Z, 1e-6)

	assert.Equal(t, math3.Vec3{}, NewScene(nil).AveragePosition())
}
