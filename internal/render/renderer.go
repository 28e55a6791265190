package render

import (
	"fmt"
	"sync"

	"splatviewer/internal/math3"
	"splatviewer/internal/splat"
	"splatviewer/internal/utils"
)

// Options configures a Renderer. Width and Height are required; the rest
// have usable zero values.
type Options struct {
	Width  int
	Height int

	// ScalingFactor controls perceived splat size independent of distance.
	// Zero means the default of 2.0.
	ScalingFactor float32

	// ConventionalProjection switches the projection stage to a single
	// standard perspective divide instead of the preserved double divide.
	ConventionalProjection bool

	// StrictGeometry makes geometry defects abort the recompute with
	// ErrGeometryDefect instead of clamping or skipping the splat.
	StrictGeometry bool

	// Optional camera overrides; nil fields keep the defaults
	// (position (3,3,3), target = scene average, up (0,1,0)).
	CameraPosition *math3.Vec3
	CameraTarget   *math3.Vec3
	UpVector       *math3.Vec3
}

// Renderer owns the camera state, the frame buffer and the staleness flag.
// Camera intents and recomputes take the write lock; serving an up-to-date
// frame takes the read lock. The internal buffer never escapes: readers get
// a copy.
type Renderer struct {
	mu sync.RWMutex

	scene  *splat.Scene
	camera Camera
	params projectParams

	frame   []byte
	stale   bool
	renders int // recompute count, observed by tests
}

// New creates a renderer for the scene. The first frame is computed lazily
// on the first Frame call (the state starts out stale).
func New(scene *splat.Scene, opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("viewport dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}

	scaling := opts.ScalingFactor
	if scaling == 0 {
		scaling = 2.0
	}

	camera := DefaultCamera(scene)
	if opts.CameraPosition != nil {
		camera.Position = *opts.CameraPosition
	}
	if opts.CameraTarget != nil {
		camera.Target = *opts.CameraTarget
	}
	if opts.UpVector != nil {
		camera.UpHint = *opts.UpVector
	}

	return &Renderer{
		scene:  scene,
		camera: camera,
		params: projectParams{
			width:        opts.Width,
			height:       opts.Height,
			scaling:      scaling,
			conventional: opts.ConventionalProjection,
			strict:       opts.StrictGeometry,
		},
		frame: make([]byte, opts.Width*opts.Height*4),
		stale: true,
	}, nil
}

// Size returns the viewport dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.params.width, r.params.height
}

// Camera returns a snapshot of the current camera state.
func (r *Renderer) Camera() Camera {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.camera
}

// Translate pans the camera along a world axis and marks the frame stale.
func (r *Renderer) Translate(delta math3.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.camera.Translate(delta)
	r.stale = true
}

// Zoom moves the camera along the view direction and marks the frame stale.
func (r *Renderer) Zoom(step float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.camera.Zoom(step)
	r.stale = true
}

// Invalidate marks the frame stale without touching the camera, forcing the
// next Frame call to recompute.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = true
}

// Frame serves a copy of the current frame buffer, recomputing it first if a
// camera intent made it stale. Consecutive calls with no intervening intent
// serve the cached pixels without recomputation.
func (r *Renderer) Frame() ([]byte, error) {
	r.mu.RLock()
	if !r.stale {
		out := make([]byte, len(r.frame))
		copy(out, r.frame)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another reader may have recomputed between the two locks.
	if r.stale {
		if err := r.recompute(); err != nil {
			return nil, err
		}
	}

	out := make([]byte, len(r.frame))
	copy(out, r.frame)
	return out, nil
}

// Render recomputes the frame unconditionally. The interactive window path
// never needs this; it exists for the headless consumer and for priming the
// frame before the window opens.
func (r *Renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recompute()
}

// recompute runs the full projection, sort and composite pipeline. Callers
// must hold the write lock. A recompute always runs to completion; there is
// no cancellation.
func (r *Renderer) recompute() error {
	projected, err := projectSplats(r.scene, r.camera, r.params)
	if err != nil {
		return err
	}

	sortBackToFront(projected)
	compositeFrame(r.frame, r.params.width, r.params.height, projected)

	r.stale = false
	r.renders++
	utils.Debug("Rendered frame %d: %d of %d splats visible", r.renders, len(projected), r.scene.Len())
	return nil
}
