// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import "context"

// Forwarder is the push-only handle a producer or converter callable
// uses to hand an item to the next Stage in a pipeline. It carries no
// state beyond a reference to the Stage it is bound to, and is not
// thread-shared: exactly one upstream callable drives it during that
// callable's single invocation.
type Forwarder[T any] struct {
	stage *stage[T]
}

// Push moves item onto the bound Stage's queue and wakes its worker.
// It returns the Stage's captured error (or [ErrClosed]) if the Stage
// has already stopped accepting work, in which case item is not
// enqueued — callers should return the error promptly rather than
// continuing to push into a dead Stage. On a [Builder.WithCapacity]
// bounded Stage, Push blocks until room frees up (subject to
// [Builder.WithPushTimeout] if also set).
func (f *Forwarder[T]) Push(item T) error {
	return f.stage.push(item)
}

// TryPush behaves like Push but returns [ErrWouldBlock] immediately,
// rather than enqueueing or blocking, when the bound Stage was built
// with [Builder.WithCapacity] and is currently full. On an unbounded
// Stage (the default), TryPush and Push are equivalent.
func (f *Forwarder[T]) TryPush(item T) error {
	return f.stage.tryPush(item)
}

// PushTimeout behaves like Push, but if the bound Stage is at capacity
// it blocks until room frees up, the Stage fails, or ctx is done —
// whichever happens first.
func (f *Forwarder[T]) PushTimeout(ctx context.Context, item T) error {
	return f.stage.pushTimeout(ctx, item)
}

// Depth reports the number of items currently queued on the bound Stage
// and not yet delivered to its consumer.
func (f *Forwarder[T]) Depth() int {
	return f.stage.Depth()
}

// Failed reports, without taking the queue lock, whether the bound Stage
// has already captured a failure. A producer or converter can check this
// before doing expensive work it knows will only be discarded.
func (f *Forwarder[T]) Failed() bool {
	return f.stage.Failed()
}
