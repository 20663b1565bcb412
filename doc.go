// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package conveyor provides a concurrent, thread-per-stage processing
// pipeline.
//
// A pipeline composes two or more callables — a producer, zero or more
// converters, and a consumer — into a chain where each non-producer
// callable runs on its own worker goroutine, and items flow from stage
// to stage as owned values. The package manages synchronization,
// goroutine lifetime, error propagation, and pipeline teardown; callers
// only supply the callables.
//
// # Quick Start
//
// Single-stage object:
//
//	var results []string
//	c := conveyor.New(func(s string) error {
//	    results = append(results, s)
//	    return nil
//	})
//	defer c.Close()
//	c.Push("a")
//	c.Push("b")
//
// Multi-stage function pipeline:
//
//	err := conveyor.ConveyorFunction3(
//	    func(fwd *conveyor.Forwarder[int]) error {
//	        for i := 1; i <= 5; i++ {
//	            if err := fwd.Push(i); err != nil {
//	                return err
//	            }
//	        }
//	        return nil
//	    },
//	    func(v int, fwd *conveyor.Forwarder[string]) error {
//	        return fwd.Push(fmt.Sprintf("%d!", v))
//	    },
//	    func(s string) error {
//	        fmt.Println(s)
//	        return nil
//	    },
//	)
//
// # Callable Shapes
//
// A callable's role is determined by its static signature — there is no
// runtime classification to configure:
//
//	producer:  func(*Forwarder[T]) error
//	converter: func(S, *Forwarder[T]) error
//	consumer:  func(S) error
//
// ConveyorFunction2 through ConveyorFunction6 accept a producer, N-2
// converters, and a consumer, with each converter's target type
// (checked by the Go compiler via the function's type parameters)
// required to match the next stage's source type. Go has no variadic
// generic mechanism, so fixed arities stand in for the unbounded
// "N callables" shape a variadic-template language would offer.
//
// # Ordering and Completion
//
// Items are delivered to each stage's consumer in the exact order they
// were pushed. ConveyorFunctionN, and Conveyor.Close, return only after
// every worker has drained its queue (or failed) and terminated.
//
// # Error Handling
//
// Stage callables return a plain error instead of panicking (a panic is
// still recovered and converted to an error, so a misbehaving callable
// cannot crash the process). The first error captured by any stage in a
// chain is the one surfaced by ConveyorFunctionN; later pushes into a
// failed stage return the captured error itself (pushes into a stage
// that finished cleanly return [ErrClosed]), which is how an upstream producer or converter learns to
// abort promptly instead of feeding a dead stage.
//
// # Back-pressure (opt-in)
//
// By default every Stage's queue is unbounded. Passing a [Builder] built
// with [NewOptions] and [Builder.WithCapacity] bounds it: once the bound
// is reached, Push blocks until room frees up, TryPush returns
// [ErrWouldBlock] instead of blocking, and PushTimeout blocks subject to
// a context deadline. [Builder.WithPushTimeout] sets a default deadline
// applied to Push and to any PushTimeout call whose ctx carries none of
// its own.
//
//	opts := conveyor.NewOptions().WithCapacity(1024)
//	c := conveyor.New(consume, opts)
//
//	backoff := iox.Backoff{}
//	for c.TryPush(item) != nil {
//	    backoff.Wait()
//	}
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the lock-free flags
// a pusher checks without taking the queue lock, [code.hybscloud.com/iox]
// for the [ErrWouldBlock] sentinel and its classification helpers, and
// [code.hybscloud.com/spin] for the brief busy-wait before a bounded
// PushTimeout commits to blocking on its condition variable.
package conveyor
