package ecs

import (
	"runtime"
	"sync"
)

// parallelChunks splits n items into up to runtime.GOMAXPROCS(0) contiguous
// chunks, never producing an empty chunk and never more chunks than items.
// The distilled spec leaves the chunking policy unspecified; splitting by
// available CPUs with a floor of one item per goroutine is the simplest
// policy that scales without oversubscribing for small entity counts.
func parallelChunks(n int) [][2]int {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		if n == 0 {
			return nil
		}
		return [][2]int{{0, n}}
	}

	chunkSize := (n + workers - 1) / workers
	var chunks [][2]int
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}

// ParallelView1 iterates entities owning A across a worker pool, one
// goroutine per chunk of the packed array. Per-entity work is independent
// by construction (each goroutine only ever touches its own slice of
// component pointers), so fn need not synchronize itself — but fn must not
// mutate the registry's entity/pool structure (spawn, kill, emplace,
// remove), since that's only safe from a single-threaded context.
type ParallelView1[A any] struct {
	r *Registry
}

func NewParallelView1[A any](r *Registry) ParallelView1[A] { return ParallelView1[A]{r: r} }

func (v ParallelView1[A]) Each(fn func(e Entity, a *A)) {
	pa := getOrCreateTypedPool[A](v.r)
	entities := pa.Packed()
	chunks := parallelChunks(len(entities))

	var wg sync.WaitGroup
	for _, c := range chunks {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range entities[c[0]:c[1]] {
				if a, ok := pa.Get(e); ok {
					fn(e, a)
				}
			}
		}()
	}
	wg.Wait()
}

// ParallelView2 iterates entities owning both A and B across a worker
// pool, chunked over the smaller pool's packed array.
type ParallelView2[A, B any] struct {
	r *Registry
}

func NewParallelView2[A, B any](r *Registry) ParallelView2[A, B] { return ParallelView2[A, B]{r: r} }

func (v ParallelView2[A, B]) Each(fn func(e Entity, a *A, b *B)) {
	pa := getOrCreateTypedPool[A](v.r)
	pb := getOrCreateTypedPool[B](v.r)

	var entities []Entity
	driveOnA := pa.Size() <= pb.Size()
	if driveOnA {
		entities = pa.Packed()
	} else {
		entities = pb.Packed()
	}
	chunks := parallelChunks(len(entities))

	var wg sync.WaitGroup
	for _, c := range chunks {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range entities[c[0]:c[1]] {
				a, ok := pa.Get(e)
				if !ok {
					continue
				}
				b, ok := pb.Get(e)
				if !ok {
					continue
				}
				fn(e, a, b)
			}
		}()
	}
	wg.Wait()
}
