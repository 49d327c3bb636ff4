// Package resource binds one backend request to an observable lifecycle.
//
// A Resource is idle until a request is bound. Binding a request, binding a
// different one, or calling Refetch starts exactly one fetch. Each fetch
// carries its own generation and context; when a newer fetch starts, the
// older one is cancelled and whatever it settles with is dropped, so the
// state always reflects the last request issued.
package resource

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

// State is a snapshot of a resource. Outside of Loading, at most one of
// Data and Err is set.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// Idle reports whether the state carries nothing at all.
func (s State[T]) Idle() bool {
	return s.Data == nil && !s.Loading && s.Err == nil
}

// Status is the type-erased part of State used by aggregates.
type Status struct {
	Loading bool
	Err     error
	Ready   bool
}

type Resource[T any] struct {
	client client.Client
	log    logging.Logger
	base   context.Context
	stop   context.CancelFunc

	mu     sync.Mutex
	req    *client.Request
	key    string
	state  State[T]
	gen    uint64
	cancel context.CancelFunc
	// done is open exactly while state.Loading is true.
	done   chan struct{}
	closed bool

	notifyMu sync.Mutex
	subs     map[uint64]func(State[T])
	subSeq   uint64
}

// New returns an idle resource. Fetches run under ctx; cancelling it has
// the same effect as Close.
func New[T any](ctx context.Context, c client.Client, log logging.Logger) *Resource[T] {
	base, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	close(done)
	return &Resource[T]{
		client: c,
		log:    log,
		base:   base,
		stop:   stop,
		done:   done,
		subs:   make(map[uint64]func(State[T])),
	}
}

// Bind points the resource at req. A nil req returns it to idle. Binding
// a request with the same Key as the current one does nothing.
func (r *Resource[T]) Bind(req *client.Request) {
	r.Prepare(req)()
}

// Prepare is Bind split in two: the state change happens now and the
// returned function issues the request. Callers binding several resources
// together prepare all of them first so that none can settle before the
// others are loading.
func (r *Resource[T]) Prepare(req *client.Request) (start func()) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return noop
	}

	if req == nil {
		if r.req == nil {
			r.mu.Unlock()
			return noop
		}
		r.abortLocked()
		r.req, r.key = nil, ""
		r.state = State[T]{}
		r.mu.Unlock()
		r.publish()
		return noop
	}

	key := req.Key()
	if r.req != nil && r.key == key {
		r.mu.Unlock()
		return noop
	}
	bound := *req
	r.req, r.key = &bound, key
	run := r.startLocked()
	r.mu.Unlock()

	r.publish()
	return func() { go run() }
}

// Refetch re-issues the bound request. An idle resource ignores it.
func (r *Resource[T]) Refetch() {
	r.PrepareRefetch()()
}

// PrepareRefetch is Refetch split the same way as Prepare.
func (r *Resource[T]) PrepareRefetch() (start func()) {
	r.mu.Lock()
	if r.closed || r.req == nil {
		r.mu.Unlock()
		return noop
	}
	run := r.startLocked()
	r.mu.Unlock()

	r.publish()
	return func() { go run() }
}

func noop() {}

// State returns the current snapshot.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resource[T]) Status() Status {
	st := r.State()
	return Status{Loading: st.Loading, Err: st.Err, Ready: st.Data != nil}
}

// Request returns a copy of the bound request, or nil when idle.
func (r *Resource[T]) Request() *client.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.req == nil {
		return nil
	}
	cp := *r.req
	return &cp
}

// Wait blocks until no fetch is in flight or ctx is done.
func (r *Resource[T]) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		loading, done := r.state.Loading, r.done
		r.mu.Unlock()
		if !loading {
			return nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Subscribe registers fn for every state change and returns a function
// that removes it. Deliveries are serialized and always carry the latest
// state. fn must not call back into the resource synchronously.
func (r *Resource[T]) Subscribe(fn func(State[T])) func() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	r.subSeq++
	id := r.subSeq
	r.subs[id] = fn
	return func() {
		r.notifyMu.Lock()
		defer r.notifyMu.Unlock()
		delete(r.subs, id)
	}
}

// Watch is Subscribe without the payload.
func (r *Resource[T]) Watch(fn func()) func() {
	return r.Subscribe(func(State[T]) { fn() })
}

// Close cancels any fetch in flight and stops accepting work. Data already
// loaded stays readable.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.abortLocked()
	r.mu.Unlock()
	r.stop()

	r.notifyMu.Lock()
	r.subs = make(map[uint64]func(State[T]))
	r.notifyMu.Unlock()
}

// startLocked moves the resource into Loading for a new generation and
// returns the fetch to run outside the lock.
func (r *Resource[T]) startLocked() func() {
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen

	ctx, cancel := context.WithCancel(r.base)
	r.cancel = cancel
	if !r.state.Loading {
		r.done = make(chan struct{})
	}
	r.state.Loading = true
	r.state.Err = nil

	req := *r.req
	r.log.Debug(ctx, "resource fetch started", "path", req.Path, "generation", gen)
	return func() { r.run(ctx, gen, req) }
}

// abortLocked drops the fetch in flight, if any, and leaves Loading.
func (r *Resource[T]) abortLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
	if r.state.Loading {
		r.state.Loading = false
		close(r.done)
	}
}

func (r *Resource[T]) run(ctx context.Context, gen uint64, req client.Request) {
	var out T
	err := r.client.Do(ctx, req, &out)

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		r.log.Debug(ctx, "resource settlement discarded", "path", req.Path, "generation", gen)
		return
	}
	r.cancel()
	r.cancel = nil
	if err != nil {
		r.state = State[T]{Err: err}
	} else {
		r.state = State[T]{Data: &out}
	}
	close(r.done)
	r.mu.Unlock()

	if err != nil {
		r.log.Debug(ctx, "resource fetch failed", "path", req.Path, "error", err)
	} else {
		r.log.Debug(ctx, "resource fetch settled", "path", req.Path)
	}
	r.publish()
}

func (r *Resource[T]) publish() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	if len(r.subs) == 0 {
		return
	}
	st := r.State()
	for _, fn := range r.subs {
		fn(st)
	}
}
