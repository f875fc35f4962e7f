package inkcut

// WorkerOption configures a Worker during creation.
//
// Example:
//
//	w := inkcut.NewWorker(params, inkcut.WithQueueSize(4))
type WorkerOption func(*workerOptions)

// workerOptions holds optional configuration for Worker creation.
type workerOptions struct {
	queueSize int

	// beforeHandle runs on the worker goroutine before each request.
	beforeHandle func(Request)
}

// WithQueueSize sets the capacity of the worker request channel,
// overriding Params.QueueSize. Values below 1 are ignored.
func WithQueueSize(n int) WorkerOption {
	return func(o *workerOptions) {
		if n >= 1 {
			o.queueSize = n
		}
	}
}

// ClientOption configures a Client during creation.
//
// Example:
//
//	c, err := inkcut.NewClient(params,
//	    inkcut.WithTimeouts(inkcut.Timeouts{Build: time.Minute, Preview: time.Second, Export: time.Minute}),
//	)
type ClientOption func(*clientOptions)

// clientOptions holds optional configuration for Client creation.
type clientOptions struct {
	timeouts Timeouts
	worker   []WorkerOption
}

// WithTimeouts overrides Params.Timeouts. Zero fields keep the value from
// Params.
func WithTimeouts(t Timeouts) ClientOption {
	return func(o *clientOptions) {
		if t.Build > 0 {
			o.timeouts.Build = t.Build
		}
		if t.Preview > 0 {
			o.timeouts.Preview = t.Preview
		}
		if t.Export > 0 {
			o.timeouts.Export = t.Export
		}
	}
}

// WithWorkerOptions passes options to the worker created by the client.
func WithWorkerOptions(opts ...WorkerOption) ClientOption {
	return func(o *clientOptions) {
		o.worker = append(o.worker, opts...)
	}
}
