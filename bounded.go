// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import (
	"context"

	"code.hybscloud.com/spin"
)

// errClosedOrFailedLocked returns the Stage's captured error if one is set,
// ErrClosed if it has merely finished, or nil if it is still healthy.
// Callers hold s.mu.
func (s *stage[T]) errClosedOrFailedLocked() error {
	if s.err != nil {
		return s.err
	}
	if s.shutdown.Load() {
		return ErrClosed
	}
	return nil
}

// full reports whether the Stage has a capacity bound and has reached it.
// Lock-free fast check; the authoritative check happens under s.mu.
func (s *stage[T]) full() bool {
	return s.capacity > 0 && int(s.depth.Load()) >= s.capacity
}

// tryPush behaves like push but fails fast with ErrWouldBlock instead of
// enqueueing once a capacity bound is reached. Unbounded Stages (the
// default) never return ErrWouldBlock here; tryPush degenerates to push.
func (s *stage[T]) tryPush(item T) error {
	if s.capacity <= 0 {
		return s.push(item)
	}
	if s.full() {
		return ErrWouldBlock
	}

	s.mu.Lock()
	if err := s.errClosedOrFailedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.items) >= s.capacity {
		s.mu.Unlock()
		return ErrWouldBlock
	}
	s.items = append(s.items, item)
	s.depth.Add(1)
	s.mu.Unlock()
	s.cond.Signal()
	return nil
}

// pushTimeout behaves like push, but blocks while the Stage is at
// capacity instead of returning ErrWouldBlock, waking whenever the
// worker pops an item (see stage.run's Signal after each pop). It
// returns early with ctx.Err() if ctx is done first, or with the
// Stage's captured error if the Stage fails while waiting.
//
// If ctx carries no deadline of its own and the Stage was built with
// [Builder.WithPushTimeout], that duration is applied here as the
// effective deadline; an explicit deadline on ctx always takes
// precedence over the configured default.
func (s *stage[T]) pushTimeout(ctx context.Context, item T) error {
	if s.capacity <= 0 {
		return s.push(item)
	}

	if _, ok := ctx.Deadline(); !ok && s.defaultPushTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.defaultPushTimeout)
		defer cancel()
	}

	// Short spin before committing to a condition-variable wait: the
	// common case on a near-full bounded Stage is that a slot frees up
	// within a few scheduler ticks, not that the pipeline has stalled.
	sw := spin.Wait{}
	for i := 0; i < 4 && s.full(); i++ {
		sw.Once()
	}

	done := ctx.Done()
	stopWaiter := make(chan struct{})
	if done != nil {
		go func() {
			select {
			case <-done:
				s.mu.Lock()
				s.cond.Broadcast()
				s.mu.Unlock()
			case <-stopWaiter:
			}
		}()
		defer close(stopWaiter)
	}

	s.mu.Lock()
	for {
		if err := s.errClosedOrFailedLocked(); err != nil {
			s.mu.Unlock()
			return err
		}
		if ctx.Err() != nil {
			s.mu.Unlock()
			return ctx.Err()
		}
		if len(s.items) < s.capacity {
			break
		}
		s.cond.Wait()
	}
	s.items = append(s.items, item)
	s.depth.Add(1)
	s.mu.Unlock()
	s.cond.Signal()
	return nil
}
