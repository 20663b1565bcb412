// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import "context"

// Conveyor is a single-stage object: it owns one worker goroutine and an
// unbounded FIFO of T (unless built with [Builder.WithCapacity]), and exposes
// Push as the sole way to hand it work.
//
// Example:
//
//	var results []string
//	c := conveyor.New(func(s string) error {
//	    results = append(results, s)
//	    return nil
//	})
//	defer c.Close()
//
//	for _, v := range []string{"a", "b", "c"} {
//	    if err := c.Push(v); err != nil {
//	        break
//	    }
//	}
type Conveyor[T any] struct {
	s *stage[T]
}

// New creates a Conveyor wrapping consume. The worker goroutine starts
// immediately; New never blocks.
func New[T any](consume func(T) error, opts ...*Builder) *Conveyor[T] {
	o := optsOf(opts)
	return &Conveyor[T]{s: newStage(consume, nil, o.capacity, o.pushTimeout)}
}

// Push transfers item to the worker for processing. It returns the
// captured error (or [ErrClosed]) if the Conveyor has already finished
// or failed, in which case item is not enqueued. On a [Builder.WithCapacity]
// bounded Conveyor, Push blocks until room frees up (or, if the Builder
// also carries [Builder.WithPushTimeout], until that deadline elapses).
func (c *Conveyor[T]) Push(item T) error {
	return c.s.push(item)
}

// TryPush behaves like Push but returns [ErrWouldBlock] immediately
// instead of blocking or enqueueing once a [Builder.WithCapacity] bound is
// reached. On an unbounded Conveyor (the default) it is equivalent to
// Push.
func (c *Conveyor[T]) TryPush(item T) error {
	return c.s.tryPush(item)
}

// PushTimeout behaves like Push, blocking while the Conveyor is at
// capacity until room frees up, the Conveyor fails, or ctx is done.
func (c *Conveyor[T]) PushTimeout(ctx context.Context, item T) error {
	return c.s.pushTimeout(ctx, item)
}

// Depth reports the number of items queued and not yet delivered to the
// consumer.
func (c *Conveyor[T]) Depth() int {
	return c.s.Depth()
}

// Failed reports, without taking the queue lock, whether the worker has
// already captured a failure.
func (c *Conveyor[T]) Failed() bool {
	return c.s.Failed()
}

// Close finishes the Conveyor: it stops accepting new work, waits for
// the worker to drain any already-queued items (or to have already
// failed), and joins the worker goroutine. Close is idempotent.
//
// Close returns the first error observed by the worker rather than
// discarding it, the idiomatic Go io.Closer shape. Callers that want to
// finish and ignore any error write `_ = c.Close()` explicitly.
func (c *Conveyor[T]) Close() error {
	c.s.finish()
	return c.s.checkError()
}
