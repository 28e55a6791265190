package render

import "github.com/chewxy/math32"

// compositeFrame resets the frame buffer to the opaque black background and
// alpha-blends every splat, in the given back-to-front order, as a square
// billboard. The frame is row-major RGBA with a top-left origin and is
// mutated by exactly one goroutine: blending is order-dependent between
// splats, so compositing stays strictly sequential.
func compositeFrame(frame []byte, width, height int, splats []projectedSplat) {
	for i := 0; i < len(frame); i += 4 {
		frame[i] = 0
		frame[i+1] = 0
		frame[i+2] = 0
		frame[i+3] = 255
	}

	for i := range splats {
		drawBillboard(frame, width, height, &splats[i])
	}
}

// drawBillboard blends one splat's square footprint into the frame,
// clipped to the viewport. The source color uses straight alpha and is
// composited "over" the destination in normalized float space; the
// destination alpha channel is left untouched.
func drawBillboard(frame []byte, width, height int, s *projectedSplat) {
	minX := s.x - s.size/2
	minY := s.y - s.size/2

	alpha := float32(s.color[3]) / 255
	inverse := 1 - alpha
	srcR := alpha * float32(s.color[0])
	srcG := alpha * float32(s.color[1])
	srcB := alpha * float32(s.color[2])

	for y := minY; y < minY+s.size; y++ {
		if y < 0 || y >= height {
			continue
		}
		for x := minX; x < minX+s.size; x++ {
			if x < 0 || x >= width {
				continue
			}
			i := (y*width + x) * 4
			frame[i] = uint8(math32.Round(inverse*float32(frame[i]) + srcR))
			frame[i+1] = uint8(math32.Round(inverse*float32(frame[i+1]) + srcG))
			frame[i+2] = uint8(math32.Round(inverse*float32(frame[i+2]) + srcB))
		}
	}
}
