package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splatviewer/internal/math3"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		in   string
		want math3.Vec3
	}{
		{"1,2,3", math3.V3(1, 2, 3)},
		{"(1,2,3)", math3.V3(1, 2, 3)},
		{"-1.5, 0, 2.25", math3.V3(-1.5, 0, 2.25)},
		{"( 3 , 3 , 3 )", math3.V3(3, 3, 3)},
	}

	for _, tc := range tests {
		got, err := parseTriple(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseTripleErrors(t *testing.T) {
	for _, in := range []string{"", "1,2", "1,2,x", "a,b,c", "1;2;3"} {
		_, err := parseTriple(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseOptionalTriple(t *testing.T) {
	v, err := parseOptionalTriple("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = parseOptionalTriple("0,1,0")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, math3.V3(0, 1, 0), *v)
}

func TestDemoScene(t *testing.T) {
	scene := demoScene()
	assert.Equal(t, 5, scene.Len())
	assert.Equal(t, [4]uint8{244, 130, 80, 255}, scene.At(0).Color)
}
