package inkcut

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// envelope pairs a request with its correlation id and the context of the
// caller waiting for it.
type envelope struct {
	id  uint64
	ctx context.Context
	req Request
}

// Worker runs all pixel work on one goroutine.
//
// Requests are processed strictly one at a time in arrival order. The
// worker owns the Session: it is created, replaced and disposed inside the
// message loop and never shared. Every request produces exactly one
// Response carrying the request's id on the Responses channel, which the
// caller must drain.
//
// A request whose context is done by the time the worker reaches it is
// skipped, and a build whose context ends while it runs is discarded
// instead of replacing the base.
//
// Most callers use Client, which adds correlation, supersession and
// timeouts on top.
type Worker struct {
	requests  chan envelope
	responses chan Response

	// done signals the loop to stop.
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	params       Params
	beforeHandle func(Request)
}

// NewWorker validates p and starts a worker goroutine.
func NewWorker(p Params, opts ...WorkerOption) (*Worker, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := workerOptions{queueSize: p.QueueSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queueSize < 1 {
		o.queueSize = 1
	}

	w := &Worker{
		requests:     make(chan envelope, o.queueSize),
		responses:    make(chan Response, o.queueSize),
		done:         make(chan struct{}),
		params:       p,
		beforeHandle: o.beforeHandle,
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Post queues a request under correlation id. It blocks while the queue is
// full, until ctx is done or the worker is closed. ctx stays attached to the
// request: once it is done the worker abandons the request.
func (w *Worker) Post(ctx context.Context, id uint64, req Request) error {
	if req == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidInput)
	}

	select {
	case <-w.done:
		return ErrClosed
	default:
	}

	select {
	case w.requests <- envelope{id: id, ctx: ctx, req: req}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-w.done:
		return ErrClosed
	}
}

// Responses returns the channel of responses. It is closed after Close.
func (w *Worker) Responses() <-chan Response {
	return w.responses
}

// Close stops the worker after the request in progress and waits for the
// loop to exit. Queued requests are dropped. Close is idempotent.
func (w *Worker) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
}

// loop is the message loop.
func (w *Worker) loop() {
	defer w.wg.Done()
	defer close(w.responses)

	session := NewSession(w.params)
	defer session.Dispose()

	for {
		select {
		case <-w.done:
			return
		case env := <-w.requests:
			if w.beforeHandle != nil {
				w.beforeHandle(env.req)
			}
			resp := w.handle(session, env)
			select {
			case w.responses <- resp:
			case <-w.done:
				return
			}
		}
	}
}

// handle processes one request. Panics are recovered into an ErrorEvent so
// nothing but a Response leaves the worker.
func (w *Worker) handle(s *Session, env envelope) (resp Response) {
	kind := env.req.Kind()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("inkcut: worker recovered from panic", "kind", kind, "id", env.id, "panic", r)
			resp = &ErrorEvent{ID: env.id, Kind: kind, Err: fmt.Errorf("inkcut: worker panic: %v", r)}
		}
	}()

	fail := func(err error) Response {
		return &ErrorEvent{ID: env.id, Kind: kind, Err: err}
	}

	if err := env.ctx.Err(); err != nil {
		Logger().Debug("inkcut: skipped abandoned request", "kind", kind, "id", env.id)
		return fail(abandoned(err))
	}

	switch req := env.req.(type) {
	case *BuildBaseRequest:
		b, err := s.prepare(req.Input)
		if err != nil {
			return fail(err)
		}
		// The caller gave up while the base was built: keep the old one.
		if err := env.ctx.Err(); err != nil {
			Logger().Warn("inkcut: discarded abandoned base", "id", env.id, "elapsed", time.Since(start))
			return fail(abandoned(err))
		}
		s.install(b)
		Logger().Info("inkcut: base done", "id", env.id, "threshold", b.info.Threshold, "elapsed", time.Since(start))
		return &BaseDone{ID: env.id, Info: b.info}

	case *PreviewMorphRequest:
		m, err := s.Preview(req.Offset)
		if err != nil {
			return fail(err)
		}
		Logger().Debug("inkcut: preview done", "id", env.id, "offset", req.Offset, "elapsed", time.Since(start))
		return &PreviewMask{ID: env.id, Mask: m}

	case *ExportMaskRequest:
		m, err := s.Export(req.Offset)
		if err != nil {
			return fail(err)
		}
		done := &ExportMaskDone{ID: env.id, Mask: m}
		if req.Package != nil {
			img, err := Package(m, *req.Package)
			if err != nil {
				return fail(err)
			}
			done.Image = img
		}
		Logger().Info("inkcut: export done", "id", env.id, "offset", req.Offset, "elapsed", time.Since(start))
		return done

	default:
		return fail(ErrUnknownRequest)
	}
}

// abandoned maps the context error of a request nobody waits for.
func abandoned(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
