// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import "time"

// PipelineOptions configures the Stages built by New and ConveyorFunctionN.
// The zero value is the default: unbounded queues, no push timeout.
type PipelineOptions struct {
	capacity    int // 0 means unbounded (the default)
	pushTimeout time.Duration
}

// Builder provides a fluent API for configuring pipeline construction,
// mirroring the Options/Builder pair used throughout this module's
// companion queue library for algorithm/capacity selection.
//
// Example:
//
//	c := conveyor.New[string](consume, conveyor.NewOptions().WithCapacity(1024))
type Builder struct {
	opts PipelineOptions
}

// NewOptions creates a Builder with the default (unbounded) options.
func NewOptions() *Builder {
	return &Builder{}
}

// WithCapacity bounds every Stage built from this Builder to at most n
// pending items. Once the bound is reached, Push blocks until room frees
// up (subject to [Builder.WithPushTimeout] if also set), PushTimeout
// blocks subject to its ctx, and TryPush returns [ErrWouldBlock]
// immediately instead of blocking. n <= 0 restores the default,
// unbounded behavior.
func (b *Builder) WithCapacity(n int) *Builder {
	b.opts.capacity = n
	return b
}

// WithPushTimeout sets the default deadline used by PushTimeout calls
// that are not given an explicit context deadline. Zero (the default)
// means PushTimeout blocks until room frees up or the Stage fails, with
// no additional deadline of its own.
func (b *Builder) WithPushTimeout(d time.Duration) *Builder {
	b.opts.pushTimeout = d
	return b
}

// Options returns the configured PipelineOptions.
func (b *Builder) Options() PipelineOptions {
	return b.opts
}
