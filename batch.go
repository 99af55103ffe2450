package geoshift

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Batches below this size convert inline; goroutine fan-out only pays for
// itself on larger inputs.
const batchParallelMin = 128

// BatchTransform converts every coordinate from one system to another,
// preserving input order. The whole batch fails on the first invalid element
// and the error names that element's index; there are no partial results.
// Large batches fan out across a bounded worker group, which changes nothing
// observable because each conversion is pure.
func BatchTransform(points []Coordinate, from, to System) ([]Coordinate, error) {
	if !from.valid() {
		return nil, inputErrorf("unsupported source system %s", from)
	}
	if !to.valid() {
		return nil, inputErrorf("unsupported target system %s", to)
	}
	for i, p := range points {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("batch transform: point %d: %w", i, err)
		}
	}

	out := make([]Coordinate, len(points))
	if len(points) < batchParallelMin {
		for i, p := range points {
			c, err := transformValidated(p, from, to)
			if err != nil {
				return nil, fmt.Errorf("batch transform: point %d: %w", i, err)
			}
			out[i] = c
		}
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(points) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(points); start += chunk {
		start := start
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				c, err := transformValidated(points[i], from, to)
				if err != nil {
					return fmt.Errorf("batch transform: point %d: %w", i, err)
				}
				out[i] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
