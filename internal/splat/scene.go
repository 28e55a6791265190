package splat

import "splatviewer/internal/math3"

// Scene is an ordered, immutable sequence of splats. It is built once, by
// Decode or NewScene, and never mutated afterwards.
type Scene struct {
	splats []Splat
}

// NewScene builds a scene from an already-constructed splat list (used for
// synthetic scenes and tests). The scene takes ownership of the slice.
func NewScene(splats []Splat) *Scene {
	return &Scene{splats: splats}
}

func (s *Scene) Len() int { return len(s.splats) }

func (s *Scene) At(i int) Splat { return s.splats[i] }

// Splats exposes the underlying list for read-only iteration.
func (s *Scene) Splats() []Splat { return s.splats }

// AveragePosition is the arithmetic mean of all splat positions, used as the
// default camera look target. An empty scene averages to the origin.
func (s *Scene) AveragePosition() math3.Vec3 {
	if len(s.splats) == 0 {
		return math3.Vec3{}
	}

	var sum math3.Vec3
	for i := range s.splats {
		sum = sum.Add(s.splats[i].Position)
	}
	return sum.Scale(1 / float32(len(s.splats)))
}
