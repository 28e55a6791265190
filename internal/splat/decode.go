package splat

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"

	"splatviewer/internal/utils"
)

// DecodeOptions selects how the parallel decoder collects its results.
// It is an explicit per-call value so both modes stay testable.
type DecodeOptions struct {
	// Ordered restores file order after the parallel decode: each record is
	// tagged with its source chunk index and the collected results are sorted
	// by that index. When false, records are kept in completion order.
	Ordered bool

	// Workers is the number of decode goroutines. Zero means GOMAXPROCS.
	Workers int
}

type indexedSplat struct {
	index int
	splat Splat
}

// Decode parses a flat byte buffer of 32-byte records into a scene.
// The buffer length must be an exact multiple of 32; any record failure
// aborts the whole decode and no partial scene is returned.
func Decode(data []byte, opts DecodeOptions) (*Scene, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMalformedInput, len(data))
	}

	count := len(data) / RecordSize
	if count == 0 {
		return NewScene(nil), nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}

	// Records have no cross-chunk dependencies, so chunks are fanned out to
	// the workers and collected in completion order.
	chunks := make(chan int, count)
	for i := 0; i < count; i++ {
		chunks <- i
	}
	close(chunks)

	results := make(chan indexedSplat, count)

	var group errgroup.Group
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for i := range chunks {
				s, err := DecodeRecord(data[i*RecordSize : (i+1)*RecordSize])
				if err != nil {
					return fmt.Errorf("chunk %d: %w", i, err)
				}
				results <- indexedSplat{index: i, splat: s}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	close(results)

	collected := make([]indexedSplat, 0, count)
	for r := range results {
		collected = append(collected, r)
	}

	if opts.Ordered {
		sort.Slice(collected, func(a, b int) bool {
			return collected[a].index < collected[b].index
		})
	}

	splats := make([]Splat, len(collected))
	for i, r := range collected {
		splats[i] = r.splat
	}
	return NewScene(splats), nil
}

// Load reads a scene file and decodes it. Files ending in .lz4 are
// decompressed (LZ4 frame format) before decoding.
func Load(path string, opts DecodeOptions) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".lz4") {
		utils.Debug("Scene file %s is LZ4 compressed, decompressing", path)
		reader = lz4.NewReader(f)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	scene, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene file %s: %w", path, err)
	}

	utils.Debug("Decoded %d splats from %s (%d bytes)", scene.Len(), path, len(data))
	return scene, nil
}
