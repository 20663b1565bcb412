// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrClosed is returned by Push/Forwarder.Push once the target Stage has
// finished cleanly before the push arrived. A push into a Stage that has
// captured a failure returns that captured failure instead, never
// ErrClosed.
var ErrClosed = errors.New("conveyor: stage closed")

// ErrWouldBlock indicates a bounded-capacity TryPush could not proceed
// immediately because the Stage's queue is full.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// [code.hybscloud.com/lfq], which uses the same sentinel for the same
// condition on its lock-free queues.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := stage.TryPush(item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if conveyor.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates a bounded push would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
