package render

import (
	"runtime"
	"sort"
	"sync"
)

// Scenes below this size sort faster sequentially than the chunked
// parallel path.
const parallelSortThreshold = 1 << 14

// farther orders splats back to front: descending distance, with ties broken
// by ascending scene index so the result is deterministic.
func farther(a, b projectedSplat) bool {
	if a.distance != b.distance {
		return a.distance > b.distance
	}
	return a.sceneIndex < b.sceneIndex
}

// sortBackToFront orders the projected splats farthest first. Large inputs
// are split into chunks sorted in parallel and then merged; the result is
// identical to the sequential sort.
func sortBackToFront(splats []projectedSplat) {
	if len(splats) < parallelSortThreshold {
		sort.Slice(splats, func(i, j int) bool { return farther(splats[i], splats[j]) })
		return
	}

	workers := runtime.GOMAXPROCS(0)
	chunkLen := (len(splats) + workers - 1) / workers

	var chunks [][]projectedSplat
	for begin := 0; begin < len(splats); begin += chunkLen {
		end := begin + chunkLen
		if end > len(splats) {
			end = len(splats)
		}
		chunks = append(chunks, splats[begin:end])
	}

	var wg sync.WaitGroup
	for _, chunk := range chunks {
		wg.Add(1)
		go func(c []projectedSplat) {
			defer wg.Done()
			sort.Slice(c, func(i, j int) bool { return farther(c[i], c[j]) })
		}(chunk)
	}
	wg.Wait()

	// Pairwise merge until a single ordered run remains.
	for len(chunks) > 1 {
		merged := make([][]projectedSplat, 0, (len(chunks)+1)/2)
		for i := 0; i < len(chunks); i += 2 {
			if i+1 == len(chunks) {
				merged = append(merged, chunks[i])
				continue
			}
			merged = append(merged, mergeRuns(chunks[i], chunks[i+1]))
		}
		chunks = merged
	}
	copy(splats, chunks[0])
}

func mergeRuns(a, b []projectedSplat) []projectedSplat {
	out := make([]projectedSplat, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if farther(b[j], a[i]) {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
