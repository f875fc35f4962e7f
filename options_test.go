package inkcut

import (
	"testing"
	"time"
)

func TestWithQueueSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{4, 4},
		{1, 1},
		{0, 16},
		{-3, 16},
	}
	for _, tt := range tests {
		o := workerOptions{queueSize: 16}
		WithQueueSize(tt.n)(&o)
		if o.queueSize != tt.want {
			t.Errorf("WithQueueSize(%d): queueSize = %d, want %d", tt.n, o.queueSize, tt.want)
		}
	}
}

func TestNewWorkerQueueSize(t *testing.T) {
	w, err := NewWorker(DefaultParams(), WithQueueSize(3))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if got := cap(w.requests); got != 3 {
		t.Errorf("request queue capacity = %d, want 3", got)
	}
}

func TestWithTimeouts(t *testing.T) {
	o := clientOptions{timeouts: DefaultParams().Timeouts}
	WithTimeouts(Timeouts{Preview: time.Second})(&o)

	want := Timeouts{Build: 30 * time.Second, Preview: time.Second, Export: 30 * time.Second}
	if o.timeouts != want {
		t.Errorf("timeouts = %+v, want %+v", o.timeouts, want)
	}
}

func TestWithWorkerOptions(t *testing.T) {
	var o clientOptions
	WithWorkerOptions(WithQueueSize(2))(&o)
	WithWorkerOptions(WithQueueSize(5))(&o)

	if len(o.worker) != 2 {
		t.Fatalf("got %d worker options, want 2", len(o.worker))
	}
	var wo workerOptions
	for _, opt := range o.worker {
		opt(&wo)
	}
	if wo.queueSize != 5 {
		t.Errorf("queueSize = %d, want the last option to win", wo.queueSize)
	}
}
