// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package conveyor_test

import (
	"testing"

	"code.hybscloud.com/conveyor"
)

func TestBuilder_CapacityZeroMeansUnbounded(t *testing.T) {
	opts := conveyor.NewOptions().WithCapacity(0)
	c := conveyor.New(func(int) error { return nil }, opts)
	defer c.Close()
	for i := 0; i < 50; i++ {
		if err := c.TryPush(i); err != nil {
			t.Fatalf("TryPush(%d) on zero-capacity (unbounded) builder: %v", i, err)
		}
	}
}

func TestBuilder_NegativeCapacityMeansUnbounded(t *testing.T) {
	opts := conveyor.NewOptions().WithCapacity(-1)
	c := conveyor.New(func(int) error { return nil }, opts)
	defer c.Close()
	for i := 0; i < 50; i++ {
		if err := c.TryPush(i); err != nil {
			t.Fatalf("TryPush(%d) on negative-capacity builder: %v", i, err)
		}
	}
}
