// Package runtime drives the progressive render: a fixed worker pool
// claiming tiles by atomic fetch-add, cancellation and image/checkpoint
// signal hooks, and pass accounting.
package runtime

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"spectral-renderer/internal/renderer"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/scenefile"
)

// Runtime owns a shared renderer, the global tile counter (claims at or
// past passes·tilesPerPass find no work left), and the cancel flag.
type Runtime struct {
	Renderer *renderer.Renderer
	Doc      *scenefile.Document

	progress atomic.Uint64
	cancel   atomic.Bool

	wg       sync.WaitGroup
	signalCh chan os.Signal
	done     chan struct{}
}

// New wraps a built renderer and its source document.
func New(r *renderer.Renderer, doc *scenefile.Document) *Runtime {
	return &Runtime{
		Renderer: r,
		Doc:      doc,
		done:     make(chan struct{}),
	}
}

// Load reads a runtime from a scene file (.json) or a checkpoint (.bin),
// deciding by suffix with a best-effort fallback for unknown endings.
func Load(path string) (*Runtime, error) {
	switch {
	case strings.HasSuffix(path, ".json"):
		return loadScene(path)
	case strings.HasSuffix(path, ".bin"):
		return loadCheckpoint(path)
	default:
		slog.Warn("unknown file ending, trying best-effort", "path", path)
		rt, err := loadScene(path)
		if err == nil {
			return rt, nil
		}
		return loadCheckpoint(path)
	}
}

func loadScene(path string) (*Runtime, error) {
	doc, err := scenefile.Load(path)
	if err != nil {
		return nil, err
	}

	r, err := scenefile.Build(doc)
	if err != nil {
		return nil, err
	}

	return New(r, doc), nil
}

func loadCheckpoint(path string) (*Runtime, error) {
	ck, err := ReadCheckpoint(path)
	if err != nil {
		return nil, err
	}

	r, err := scenefile.Build(&ck.Doc)
	if err != nil {
		return nil, err
	}
	r.Sensor = ck.Sensor

	rt := New(r, &ck.Doc)
	rt.progress.Store(ck.Progress)
	return rt, nil
}

// Progress returns the claimed tile count.
func (rt *Runtime) Progress() uint64 {
	return rt.progress.Load()
}

// Cancelled reports whether the cancel flag fired.
func (rt *Runtime) Cancelled() bool {
	return rt.cancel.Load()
}

// Cancel asks all workers to exit at their next iteration boundary.
// In-flight tiles complete so the incremental means stay consistent.
func (rt *Runtime) Cancel() {
	rt.cancel.Store(true)
}

// TotalTiles returns passes × tiles per pass.
func (rt *Runtime) TotalTiles() uint64 {
	return uint64(rt.Renderer.Config.Passes) * uint64(rt.Renderer.Sensor.NumTiles())
}

// Run installs the signal hooks and starts the worker pool and progress
// printer. It returns immediately; use Wait to join.
func (rt *Runtime) Run() {
	rt.registerSignals()

	threads := rt.Renderer.Config.Threads
	slog.Info("starting render", "threads", threads,
		"tiles", rt.TotalTiles(), "progress", rt.Progress())

	go rt.printProgress()

	for w := 0; w < threads; w++ {
		rt.wg.Add(1)
		go rt.worker(int64(w))
	}
}

// worker claims tiles until the counter runs out or cancellation fires.
func (rt *Runtime) worker(seed int64) {
	defer rt.wg.Done()

	rng := sampler.NewRand(seed)
	tilesPerPass := uint64(rt.Renderer.Sensor.NumTiles())
	total := rt.TotalTiles()

	for {
		if rt.cancel.Load() {
			return
		}

		tileIndex := rt.progress.Add(1) - 1
		if tileIndex >= total {
			return
		}

		rt.Renderer.RenderTile(int(tileIndex%tilesPerPass), rng)
	}
}

// Wait joins the pool. On cancellation the current image is flushed and a
// checkpoint written; on completion only the final image is emitted.
func (rt *Runtime) Wait() {
	rt.wg.Wait()
	close(rt.done)

	rt.Renderer.SaveImage(-1)

	if rt.Cancelled() {
		if err := rt.SaveCheckpoint(); err != nil {
			slog.Error("unable to save checkpoint", "err", err)
		}
	}
}

// SaveCheckpoint serialises the full renderer state next to the output stem.
func (rt *Runtime) SaveCheckpoint() error {
	path := fmt.Sprintf("%s.bin", rt.Renderer.Config.Output)

	ck := &Checkpoint{
		Doc:      *rt.Doc,
		Sensor:   rt.Renderer.Sensor,
		Progress: rt.Progress(),
	}
	if err := WriteCheckpoint(ck, path); err != nil {
		return err
	}

	slog.Info("saved checkpoint", "path", path)
	return nil
}

// registerSignals centralises the process signal hooks: SIGINT/SIGTERM
// cancel, SIGUSR1 flushes the image, SIGUSR2 writes a checkpoint. All three
// are advisory.
func (rt *Runtime) registerSignals() {
	rt.signalCh = make(chan os.Signal, 4)

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("signal registration unavailable, continuing without", "reason", r)
		}
	}()
	signal.Notify(rt.signalCh, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		for {
			select {
			case <-rt.done:
				return
			case sig := <-rt.signalCh:
				switch sig {
				case os.Interrupt, syscall.SIGTERM:
					slog.Info("cancellation requested", "signal", sig)
					rt.Cancel()
				case syscall.SIGUSR1:
					rt.Renderer.SaveImage(int(rt.Progress()))
				case syscall.SIGUSR2:
					if err := rt.SaveCheckpoint(); err != nil {
						slog.Error("unable to save checkpoint", "err", err)
					}
				}
			}
		}
	}()
}

// printProgress reports the tile throughput until the render ends.
func (rt *Runtime) printProgress() {
	start := time.Now()
	startTiles := rt.Progress()
	total := rt.TotalTiles()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-rt.done:
			return
		case <-ticker.C:
			p := rt.Progress()
			if p > total {
				p = total
			}
			if p > startTiles {
				elapsed := time.Since(start).Seconds()
				rate := float64(p-startTiles) / elapsed
				fmt.Printf("  [%d/%d] %.1f tiles/sec\n", p, total, rate)
			}
		}
	}
}
