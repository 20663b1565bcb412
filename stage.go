// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// downstream is the type-erased half of a linked Stage: the only two
// operations a Stage needs to perform on the Stage immediately below it
// in a chain, regardless of that Stage's item type. Keeping this
// polymorphic (instead of the whole Stage) is what lets a typed chain of
// differently-typed Stages be linked at all: the hot-path push from a
// converter into its downstream Forwarder is bound statically at
// composition time, and only the drain/error walk needs to cross the
// type boundary.
type downstream interface {
	finish()
	checkError() error
}

// stage is a single-worker pipeline cell: a FIFO of T (unbounded unless
// built with a capacity bound), a
// dedicated worker goroutine draining it into a consumer callable, and
// the shutdown/error bookkeeping a Forwarder and the top-level entry
// points need to observe.
type stage[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T

	shutdown atomix.Bool // monotone false -> true, set by finish
	failed   atomix.Bool // lock-free mirror of err != nil, read by Failed
	depth    atomix.Int64

	err  error
	done chan struct{}

	consume    func(T) error
	downstream downstream // nil for the tail stage

	capacity           int           // 0 means unbounded; see bounded.go
	defaultPushTimeout time.Duration // applied by pushTimeout when ctx carries no deadline
}

// newStage constructs a Stage wrapping consume and immediately starts its
// worker goroutine. down may be nil (tail stage).
func newStage[T any](consume func(T) error, down downstream, capacity int, defaultPushTimeout time.Duration) *stage[T] {
	s := &stage[T]{
		consume:            consume,
		downstream:         down,
		done:               make(chan struct{}),
		capacity:           capacity,
		defaultPushTimeout: defaultPushTimeout,
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// run is the worker's drain loop: wait while the FIFO is empty and
// shutdown has not been requested, pop under the lock, deliver to the
// consumer outside the lock, and stop (recording the failure) the moment
// the consumer reports an error.
func (s *stage[T]) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.items) == 0 && !s.shutdown.Load() {
			s.cond.Wait()
		}
		if len(s.items) == 0 {
			s.mu.Unlock()
			return
		}
		item := s.items[0]
		s.items[0] = *new(T)
		s.items = s.items[1:]
		s.depth.Add(-1)
		s.mu.Unlock()
		if s.capacity > 0 {
			s.cond.Signal() // wake a PushTimeout waiter blocked on capacity
		}

		if err := s.invoke(item); err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = err
				s.failed.Store(true)
			}
			s.mu.Unlock()
			s.cond.Broadcast()
			return
		}
	}
}

// invoke runs the consumer, converting a panic into an error so a
// misbehaving callable cannot crash the process.
func (s *stage[T]) invoke(item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conveyor: stage panicked: %v", r)
		}
	}()
	return s.consume(item)
}

// push appends item to the FIFO and wakes the worker. It re-raises any
// already-captured error instead of enqueueing, so a pusher downstream
// of a failed stage learns about the failure on its very next push. On a
// Stage built with a capacity bound, push blocks until room frees up
// (subject to defaultPushTimeout, if one was configured) rather than
// growing the queue past the bound; it delegates to pushTimeout with a
// background context for that case.
func (s *stage[T]) push(item T) error {
	if s.capacity > 0 {
		return s.pushTimeout(context.Background(), item)
	}
	s.mu.Lock()
	if err := s.errClosedOrFailedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = append(s.items, item)
	s.depth.Add(1)
	s.mu.Unlock()
	s.cond.Signal()
	return nil
}

// Failed reports, without taking the queue lock, whether this Stage has
// already captured a failure. Pushers on a long chain can use this to
// skip straight to aborting without paying for a lock round-trip on the
// common "the chain is already dead" path.
func (s *stage[T]) Failed() bool {
	return s.failed.Load()
}

// finish sets shutdown, wakes the worker, waits for it to terminate, and
// then recurses into the downstream Stage. Idempotent: a second call
// observes shutdown already set, still waits on the (already-closed)
// done channel, and still recurses (which is itself idempotent).
func (s *stage[T]) finish() {
	s.mu.Lock()
	if !s.shutdown.Load() {
		s.shutdown.Store(true)
		s.mu.Unlock()
		s.cond.Broadcast()
	} else {
		s.mu.Unlock()
	}
	<-s.done
	if s.downstream != nil {
		s.downstream.finish()
	}
}

// checkError reports this Stage's captured error, or recurses into the
// downstream Stage if this one is healthy. Used by the top-level entry
// points to surface the first failure of a chain after drain.
func (s *stage[T]) checkError() error {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if s.downstream != nil {
		return s.downstream.checkError()
	}
	return nil
}

// Depth reports the number of items currently queued and not yet
// delivered to the consumer. Read lock-free via an atomix counter; it is
// a snapshot, not a synchronization point.
func (s *stage[T]) Depth() int {
	return int(s.depth.Load())
}
