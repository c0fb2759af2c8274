package orbit

import (
	"context"
	"errors"
	"sync"
)

// ErrWorkerClosed is returned by Submit after the worker loop has exited.
var ErrWorkerClosed = errors.New("orbit: worker closed")

// Request asks a Worker for one level. Vector is copied on submit.
type Request struct {
	LevelID int
	Vector  Vector
}

// Result carries a private copy of the level buffers; the caller owns it.
type Result struct {
	LevelID int
	Buffers [][]float32
	Stats   Stats
}

type job struct {
	req   Request
	reply chan Result
}

// Worker runs a Builder on its own goroutine. Requests and results cross the
// boundary by value, so the host never sees pool storage.
type Worker struct {
	b    *Builder
	jobs chan job
	done chan struct{}
	once sync.Once
}

// NewWorker wraps b. b must not be used directly once Run has started.
func NewWorker(b *Builder) *Worker {
	return &Worker{
		b:    b,
		jobs: make(chan job),
		done: make(chan struct{}),
	}
}

// Run serves requests until ctx is done. A build that has started always completes.
func (w *Worker) Run(ctx context.Context) {
	defer w.once.Do(func() { close(w.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-w.jobs:
			bufs := w.b.BuildVector(j.req.LevelID, j.req.Vector)
			// reply is buffered: the submitter may have given up
			j.reply <- Result{LevelID: j.req.LevelID, Buffers: CopyBuffers(bufs), Stats: w.b.Stats()}
		}
	}
}

// Submit sends req and waits for its result. Cancelling ctx abandons the wait, not the build.
func (w *Worker) Submit(ctx context.Context, req Request) (Result, error) {
	j := job{req: req, reply: make(chan Result, 1)}
	select {
	case w.jobs <- j:
	case <-w.done:
		return Result{}, ErrWorkerClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case r := <-j.reply:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// CopyBuffers deep-copies a buffer set so it can outlive the next build.
func CopyBuffers(src [][]float32) [][]float32 {
	dst := make([][]float32, len(src))
	for i, b := range src {
		dst[i] = append([]float32(nil), b...)
	}
	return dst
}
