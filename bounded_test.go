// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/conveyor"
)

func TestTryPush_WouldBlockWhenFull(t *testing.T) {
	release := make(chan struct{})
	opts := conveyor.NewOptions().WithCapacity(1)
	c := conveyor.New(func(int) error {
		<-release
		return nil
	}, opts)
	defer func() {
		close(release)
		_ = c.Close()
	}()

	if err := c.TryPush(1); err != nil {
		t.Fatalf("first TryPush: %v", err)
	}
	// give the worker a chance to pick up item 1, leaving the queue
	// positioned so a second push fills the one-deep queue.
	time.Sleep(10 * time.Millisecond)
	if err := c.TryPush(2); err != nil {
		t.Fatalf("second TryPush: %v", err)
	}
	err := c.TryPush(3)
	if !conveyor.IsWouldBlock(err) {
		t.Fatalf("third TryPush: got %v, want ErrWouldBlock", err)
	}
}

func TestTryPush_UnboundedNeverBlocks(t *testing.T) {
	c := conveyor.New(func(int) error { return nil })
	defer c.Close()
	for i := 0; i < 100; i++ {
		if err := c.TryPush(i); err != nil {
			t.Fatalf("TryPush(%d): %v", i, err)
		}
	}
}

func TestPushTimeout_UnblocksWhenRoomFrees(t *testing.T) {
	opts := conveyor.NewOptions().WithCapacity(1)
	processed := make(chan int, 8)
	c := conveyor.New(func(v int) error {
		processed <- v
		return nil
	}, opts)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := c.PushTimeout(ctx, i); err != nil {
			t.Fatalf("PushTimeout(%d): %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		select {
		case v := <-processed:
			if v != i {
				t.Fatalf("processed out of order: got %d, want %d", v, i)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for item %d", i)
		}
	}
}

func TestPushTimeout_ContextCanceled(t *testing.T) {
	block := make(chan struct{})
	opts := conveyor.NewOptions().WithCapacity(1)
	c := conveyor.New(func(int) error {
		<-block
		return nil
	}, opts)
	defer func() {
		close(block)
		_ = c.Close()
	}()

	if err := c.Push(1); err != nil {
		t.Fatalf("Push(1): %v", err)
	}
	time.Sleep(10 * time.Millisecond) // let the worker claim item 1
	if err := c.Push(2); err != nil {
		t.Fatalf("Push(2): %v", err) // fills the single slot
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.PushTimeout(ctx, 3)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("PushTimeout: got %v, want context.DeadlineExceeded", err)
	}
}

// TestPush_BlocksAtCapacity pins that plain Push, not just TryPush and
// PushTimeout, enforces a Stage's WithCapacity bound: a push past the
// bound must block until the worker drains room, not silently enqueue.
func TestPush_BlocksAtCapacity(t *testing.T) {
	block := make(chan struct{})
	opts := conveyor.NewOptions().WithCapacity(1)
	c := conveyor.New(func(int) error {
		<-block
		return nil
	}, opts)
	defer func() {
		_ = c.Close()
	}()

	if err := c.Push(1); err != nil {
		t.Fatalf("Push(1): %v", err)
	}
	time.Sleep(10 * time.Millisecond) // let the worker claim item 1
	if err := c.Push(2); err != nil {
		t.Fatalf("Push(2): %v", err) // fills the single slot
	}

	pushDone := make(chan error, 1)
	go func() { pushDone <- c.Push(3) }()

	select {
	case err := <-pushDone:
		t.Fatalf("Push(3) returned early (err=%v) instead of blocking at capacity", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(block) // let the worker drain item 1, then item 2, freeing room
	select {
	case err := <-pushDone:
		if err != nil {
			t.Fatalf("Push(3) after room freed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Push(3) never returned after room freed")
	}
}

// TestPush_RespectsDefaultPushTimeout pins that WithPushTimeout actually
// bounds how long a plain Push (which calls pushTimeout with a deadline-
// free background context) can block.
func TestPush_RespectsDefaultPushTimeout(t *testing.T) {
	block := make(chan struct{})
	opts := conveyor.NewOptions().WithCapacity(1).WithPushTimeout(50 * time.Millisecond)
	c := conveyor.New(func(int) error {
		<-block
		return nil
	}, opts)
	defer func() {
		close(block)
		_ = c.Close()
	}()

	if err := c.Push(1); err != nil {
		t.Fatalf("Push(1): %v", err)
	}
	time.Sleep(10 * time.Millisecond) // let the worker claim item 1
	if err := c.Push(2); err != nil {
		t.Fatalf("Push(2): %v", err) // fills the single slot
	}

	start := time.Now()
	err := c.Push(3)
	elapsed := time.Since(start)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Push(3): got %v, want context.DeadlineExceeded", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("Push(3) took %v, want roughly the configured 50ms push timeout", elapsed)
	}
}

func TestPushTimeout_FailedStageReturnsCapturedError(t *testing.T) {
	boom := errors.New("boom")
	opts := conveyor.NewOptions().WithCapacity(1)
	c := conveyor.New(func(int) error { return boom }, opts)

	_ = c.Push(1)
	time.Sleep(10 * time.Millisecond) // let worker observe and capture boom

	ctx := context.Background()
	err := c.PushTimeout(ctx, 2)
	if err == nil {
		t.Fatal("PushTimeout after failure: got nil, want an error")
	}
	_ = c.Close()
}
