// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import "fmt"

// optsOf extracts the configured PipelineOptions from an optional Builder
// argument, defaulting to the zero value (unbounded, no push timeout)
// when none is given.
func optsOf(opts []*Builder) PipelineOptions {
	if len(opts) > 0 && opts[0] != nil {
		return opts[0].opts
	}
	return PipelineOptions{}
}

// runProducer invokes producer with a Forwarder bound to head, on the
// calling goroutine, converting a panic into an error the same way a
// Stage's worker does for converters/consumers.
func runProducer[T any](producer func(*Forwarder[T]) error, head *stage[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conveyor: producer panicked: %v", r)
		}
	}()
	return producer(&Forwarder[T]{stage: head})
}

// runPipeline drives the producer, then finishes and (only on the
// success path) surfaces the chain's first error: a producer failure
// triggers finish and is returned directly, so the producer's own error
// wins over a (likely identical) downstream error rather than being
// replaced by it.
func runPipeline[T any](producer func(*Forwarder[T]) error, head *stage[T]) error {
	if err := runProducer(producer, head); err != nil {
		head.finish()
		return err
	}
	head.finish()
	return head.checkError()
}

// ConveyorFunction2 runs a producer and a consumer on a single worker
// goroutine chain: producer executes inline on the calling goroutine and
// pushes S1 values through the Forwarder it is given; consumer executes on
// its own goroutine. ConveyorFunction2 returns once both have drained,
// surfacing the first error observed by either.
func ConveyorFunction2[S1 any](
	producer func(*Forwarder[S1]) error,
	consumer func(S1) error,
	opts ...*Builder,
) error {
	o := optsOf(opts)
	tail := newStage(consumer, nil, o.capacity, o.pushTimeout)
	return runPipeline(producer, tail)
}

// ConveyorFunction3 composes a producer, one converter, and a consumer.
// See the package doc for the producer/converter/consumer signature
// shapes.
func ConveyorFunction3[S1, S2 any](
	producer func(*Forwarder[S1]) error,
	converter func(S1, *Forwarder[S2]) error,
	consumer func(S2) error,
	opts ...*Builder,
) error {
	o := optsOf(opts)
	tail := newStage(consumer, nil, o.capacity, o.pushTimeout)
	mid := newStage(func(v S1) error {
		return converter(v, &Forwarder[S2]{stage: tail})
	}, tail, o.capacity, o.pushTimeout)
	return runPipeline(producer, mid)
}

// ConveyorFunction4 composes a producer, two converters, and a consumer.
func ConveyorFunction4[S1, S2, S3 any](
	producer func(*Forwarder[S1]) error,
	converter1 func(S1, *Forwarder[S2]) error,
	converter2 func(S2, *Forwarder[S3]) error,
	consumer func(S3) error,
	opts ...*Builder,
) error {
	o := optsOf(opts)
	tail := newStage(consumer, nil, o.capacity, o.pushTimeout)
	s2 := newStage(func(v S2) error {
		return converter2(v, &Forwarder[S3]{stage: tail})
	}, tail, o.capacity, o.pushTimeout)
	s1 := newStage(func(v S1) error {
		return converter1(v, &Forwarder[S2]{stage: s2})
	}, s2, o.capacity, o.pushTimeout)
	return runPipeline(producer, s1)
}

// ConveyorFunction5 composes a producer, three converters, and a
// consumer.
func ConveyorFunction5[S1, S2, S3, S4 any](
	producer func(*Forwarder[S1]) error,
	converter1 func(S1, *Forwarder[S2]) error,
	converter2 func(S2, *Forwarder[S3]) error,
	converter3 func(S3, *Forwarder[S4]) error,
	consumer func(S4) error,
	opts ...*Builder,
) error {
	o := optsOf(opts)
	tail := newStage(consumer, nil, o.capacity, o.pushTimeout)
	s3 := newStage(func(v S3) error {
		return converter3(v, &Forwarder[S4]{stage: tail})
	}, tail, o.capacity, o.pushTimeout)
	s2 := newStage(func(v S2) error {
		return converter2(v, &Forwarder[S3]{stage: s3})
	}, s3, o.capacity, o.pushTimeout)
	s1 := newStage(func(v S1) error {
		return converter1(v, &Forwarder[S2]{stage: s2})
	}, s2, o.capacity, o.pushTimeout)
	return runPipeline(producer, s1)
}

// ConveyorFunction6 composes a producer, four converters, and a
// consumer — the largest fixed arity offered. Go has no variadic generic
// type parameter list, so a family of fixed arities stands in for an
// unbounded chain length; six stages comfortably covers the chain
// lengths this package is exercised with.
func ConveyorFunction6[S1, S2, S3, S4, S5 any](
	producer func(*Forwarder[S1]) error,
	converter1 func(S1, *Forwarder[S2]) error,
	converter2 func(S2, *Forwarder[S3]) error,
	converter3 func(S3, *Forwarder[S4]) error,
	converter4 func(S4, *Forwarder[S5]) error,
	consumer func(S5) error,
	opts ...*Builder,
) error {
	o := optsOf(opts)
	tail := newStage(consumer, nil, o.capacity, o.pushTimeout)
	s4 := newStage(func(v S4) error {
		return converter4(v, &Forwarder[S5]{stage: tail})
	}, tail, o.capacity, o.pushTimeout)
	s3 := newStage(func(v S3) error {
		return converter3(v, &Forwarder[S4]{stage: s4})
	}, s4, o.capacity, o.pushTimeout)
	s2 := newStage(func(v S2) error {
		return converter2(v, &Forwarder[S3]{stage: s3})
	}, s3, o.capacity, o.pushTimeout)
	s1 := newStage(func(v S1) error {
		return converter1(v, &Forwarder[S2]{stage: s2})
	}, s2, o.capacity, o.pushTimeout)
	return runPipeline(producer, s1)
}
