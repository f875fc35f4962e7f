package inkcut

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// result is what a waiting caller receives.
type result struct {
	resp Response
	err  error
}

// call is an outstanding request.
type call struct {
	id   uint64
	kind RequestKind
	done chan result // buffered, written exactly once
}

// Client is the caller side of the worker protocol.
//
// Each request gets a fresh correlation id. Only the latest request of each
// kind is live: posting a new one supersedes the previous one, whose caller
// receives ErrSuperseded at once and whose late response is dropped. Each
// kind has its own time budget; a timed-out request fails with ErrTimeout
// and is not retried. A build that times out never replaces the base, even
// if the worker finishes it afterwards.
//
// Client is safe for concurrent use.
type Client struct {
	worker   *Worker
	timeouts Timeouts

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*call
	latest  map[RequestKind]uint64
	closed  bool

	closeOnce    sync.Once
	dispatchDone chan struct{}
}

// NewClient validates p and starts a worker for the client.
func NewClient(p Params, opts ...ClientOption) (*Client, error) {
	o := clientOptions{timeouts: p.Timeouts}
	for _, opt := range opts {
		opt(&o)
	}

	w, err := NewWorker(p, o.worker...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		worker:       w,
		timeouts:     o.timeouts,
		pending:      make(map[uint64]*call),
		latest:       make(map[RequestKind]uint64),
		dispatchDone: make(chan struct{}),
	}
	go c.dispatch()

	return c, nil
}

// BuildBase builds a new base from in. Ownership of in.Pixels passes to
// the worker.
func (c *Client) BuildBase(ctx context.Context, in BuildInput) (BaseInfo, error) {
	resp, err := c.do(ctx, &BuildBaseRequest{Input: in}, c.timeouts.Build)
	if err != nil {
		return BaseInfo{}, err
	}
	done, ok := resp.(*BaseDone)
	if !ok {
		return BaseInfo{}, unexpected(KindBuildBase, resp)
	}
	return done.Info, nil
}

// PreviewMorph returns the preview mask at offset preview pixels.
func (c *Client) PreviewMorph(ctx context.Context, offset float64) (*Mask, error) {
	resp, err := c.do(ctx, &PreviewMorphRequest{Offset: offset}, c.timeouts.Preview)
	if err != nil {
		return nil, err
	}
	done, ok := resp.(*PreviewMask)
	if !ok {
		return nil, unexpected(KindPreviewMorph, resp)
	}
	return done.Mask, nil
}

// ExportMask returns the full-resolution mask at offset working pixels.
// When pkg is non-nil the result also carries the packaged cutout.
func (c *Client) ExportMask(ctx context.Context, offset float64, pkg *ExportOptions) (*ExportMaskDone, error) {
	resp, err := c.do(ctx, &ExportMaskRequest{Offset: offset, Package: pkg}, c.timeouts.Export)
	if err != nil {
		return nil, err
	}
	done, ok := resp.(*ExportMaskDone)
	if !ok {
		return nil, unexpected(KindExportMask, resp)
	}
	return done, nil
}

// Close shuts the worker down. Outstanding requests fail with ErrClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.worker.Close()
		<-c.dispatchDone
	})
	return nil
}

// do posts req and waits for its response within timeout.
func (c *Client) do(ctx context.Context, req Request, timeout time.Duration) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cl, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.wait(ctx, cl)
}

// send registers a call for req, supersedes the previous call of the same
// kind and posts req to the worker.
func (c *Client) send(ctx context.Context, req Request) (*call, error) {
	kind := req.Kind()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, &RequestError{Kind: kind, Err: ErrClosed}
	}
	c.nextID++
	cl := &call{id: c.nextID, kind: kind, done: make(chan result, 1)}

	if prev, ok := c.latest[kind]; ok {
		if p := c.pending[prev]; p != nil {
			delete(c.pending, prev)
			p.done <- result{err: ErrSuperseded}
		}
	}
	c.latest[kind] = cl.id
	c.pending[cl.id] = cl
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		c.forget(cl)
		return nil, c.contextError(cl, err)
	}
	if err := c.worker.Post(ctx, cl.id, req); err != nil {
		c.forget(cl)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, c.contextError(cl, ctxErr)
		}
		return nil, &RequestError{Kind: kind, ID: cl.id, Err: err}
	}

	return cl, nil
}

// wait blocks until cl completes or ctx is done.
func (c *Client) wait(ctx context.Context, cl *call) (Response, error) {
	select {
	case r := <-cl.done:
		if r.err != nil {
			return nil, &RequestError{Kind: cl.kind, ID: cl.id, Err: r.err}
		}
		if ev, ok := r.resp.(*ErrorEvent); ok {
			return nil, &RequestError{Kind: cl.kind, ID: cl.id, Err: ev.Err}
		}
		return r.resp, nil

	case <-ctx.Done():
		c.forget(cl)
		// A response that raced the deadline wins.
		select {
		case r := <-cl.done:
			if r.err == nil {
				if _, failed := r.resp.(*ErrorEvent); !failed {
					return r.resp, nil
				}
			}
		default:
		}
		return nil, c.contextError(cl, ctx.Err())
	}
}

// contextError maps a context error to a RequestError. Deadlines become
// ErrTimeout.
func (c *Client) contextError(cl *call, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		Logger().Warn("inkcut: request timed out", "kind", cl.kind, "id", cl.id)
		return &RequestError{Kind: cl.kind, ID: cl.id, Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
	}
	return &RequestError{Kind: cl.kind, ID: cl.id, Err: err}
}

// forget drops cl so that its eventual response is discarded.
func (c *Client) forget(cl *call) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, cl.id)
	if c.latest[cl.kind] == cl.id {
		delete(c.latest, cl.kind)
	}
}

// dispatch routes worker responses to their calls until the worker closes
// its response channel, then fails whatever is still pending.
func (c *Client) dispatch() {
	defer close(c.dispatchDone)

	for resp := range c.worker.Responses() {
		id := resp.RequestID()

		c.mu.Lock()
		cl := c.pending[id]
		if cl != nil {
			delete(c.pending, id)
			if c.latest[cl.kind] == id {
				delete(c.latest, cl.kind)
			}
		}
		c.mu.Unlock()

		if cl == nil {
			Logger().Debug("inkcut: dropped stale response", "id", id)
			continue
		}
		cl.done <- result{resp: resp}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, cl := range c.pending {
		delete(c.pending, id)
		cl.done <- result{err: ErrClosed}
	}
}

// unexpected reports a response of the wrong type for kind.
func unexpected(kind RequestKind, resp Response) error {
	return &RequestError{
		Kind: kind,
		ID:   resp.RequestID(),
		Err:  fmt.Errorf("%w: unexpected response %T", ErrUnknownRequest, resp),
	}
}
