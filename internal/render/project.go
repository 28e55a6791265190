package render

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"splatviewer/internal/math3"
	"splatviewer/internal/splat"
)

// ErrGeometryDefect is an internal invariant violation: the projection math
// produced a non-finite coordinate or a pixel the culling step should have
// excluded. It is only surfaced in strict mode; otherwise the offending
// splat is clamped or dropped.
var ErrGeometryDefect = errors.New("geometry defect")

// projectedSplat is one splat that survived projection and culling,
// ready for depth sorting and compositing.
type projectedSplat struct {
	sceneIndex int
	x, y       int
	size       int // billboard side length in pixels, >= 1
	distance   float32
	color      [4]uint8
}

type projectParams struct {
	width, height int
	scaling       float32
	conventional  bool
	strict        bool
}

// projectSplats transforms every splat through the joint view-projection
// matrix, culls off-viewport splats and computes pixel position, depth metric
// and billboard footprint for the survivors. Splats are independent, so the
// work is fanned out across worker goroutines.
func projectSplats(scene *splat.Scene, cam Camera, p projectParams) ([]projectedSplat, error) {
	count := scene.Len()
	if count == 0 {
		return nil, nil
	}

	joint := cam.ViewProjection(float32(p.width) / float32(p.height))

	workers := runtime.GOMAXPROCS(0)
	if workers > count {
		workers = count
	}
	chunkLen := (count + workers - 1) / workers

	partial := make([][]projectedSplat, workers)

	var group errgroup.Group
	for w := 0; w < workers; w++ {
		begin := w * chunkLen
		end := begin + chunkLen
		if end > count {
			end = count
		}
		out := &partial[w]
		group.Go(func() error {
			result := make([]projectedSplat, 0, end-begin)
			for i := begin; i < end; i++ {
				ps, ok, err := projectOne(scene.At(i), i, joint, p)
				if err != nil {
					return err
				}
				if ok {
					result = append(result, ps)
				}
			}
			*out = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	projected := make([]projectedSplat, 0, count)
	for _, part := range partial {
		projected = append(projected, part...)
	}
	return projected, nil
}

func projectOne(s splat.Splat, index int, joint math3.Mat4, p projectParams) (projectedSplat, bool, error) {
	clip := joint.MulVec4(math3.V4(s.Position.X, s.Position.Y, s.Position.Z, 1))

	x := clip.X / clip.W
	y := clip.Y / clip.W
	z := clip.Z / clip.W

	// The depth metric is the norm of the whole post-divide triple,
	// not the raw depth component.
	distance := math32.Sqrt(x*x + y*y + z*z)

	// The original renderer folds depth into the screen-space footprint by
	// dividing x and y a second time, by z. This is preserved as the default;
	// the conventional flag switches to a single standard perspective divide.
	if !p.conventional {
		x /= z
		y /= z
	}

	if !isFinite(x) || !isFinite(y) || !isFinite(distance) {
		if p.strict {
			return projectedSplat{}, false, fmt.Errorf(
				"%w: splat %d projected to non-finite coordinates (%v, %v, dist %v)",
				ErrGeometryDefect, index, x, y, distance)
		}
		return projectedSplat{}, false, nil
	}

	if x < -1 || x > 1 || y < -1 || y > 1 {
		return projectedSplat{}, false, nil
	}

	px := int(math32.Round((x + 1) / 2 * float32(p.width-1)))
	py := int(math32.Round((y + 1) / 2 * float32(p.height-1)))

	// Culling guarantees px/py land inside the viewport; anything else is a
	// defect in the projection math.
	if px < 0 || px >= p.width || py < 0 || py >= p.height {
		if p.strict {
			return projectedSplat{}, false, fmt.Errorf(
				"%w: splat %d mapped to pixel (%d, %d) outside %dx%d viewport",
				ErrGeometryDefect, index, px, py, p.width, p.height)
		}
		px = clampInt(px, 0, p.width-1)
		py = clampInt(py, 0, p.height-1)
	}

	size := int(math32.Round(2 * p.scaling / distance))
	if size < 1 {
		size = 1
	}

	return projectedSplat{
		sceneIndex: index,
		x:          px,
		y:          py,
		size:       size,
		distance:   distance,
		color:      s.Color,
	}, true, nil
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
