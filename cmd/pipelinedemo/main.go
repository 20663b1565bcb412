// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command pipelinedemo runs a three-stage conveyor.ConveyorFunction3
// pipeline (number generation -> formatting -> structured log sink) and
// reports timing and item counts with logrus.
//
// This binary, not the conveyor package itself, is where structured
// logging lives: a synchronization primitives library must not impose
// logging I/O on its hot path, so the dependency is kept at the edge.
package main

import (
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/conveyor"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	const itemCount = 20
	start := time.Now()

	var produced, consumed int

	err := conveyor.ConveyorFunction3(
		func(fwd *conveyor.Forwarder[int]) error {
			for i := 1; i <= itemCount; i++ {
				if err := fwd.Push(i); err != nil {
					log.WithError(err).Warn("producer aborting: downstream failed")
					return err
				}
				produced++
			}
			return nil
		},
		func(v int, fwd *conveyor.Forwarder[string]) error {
			return fwd.Push(fmt.Sprintf("item-%04d", v))
		},
		func(s string) error {
			consumed++
			log.WithFields(logrus.Fields{
				"item":  s,
				"index": consumed,
			}).Debug("consumed item")
			return nil
		},
	)

	fields := logrus.Fields{
		"produced": produced,
		"consumed": consumed,
		"elapsed":  time.Since(start).String(),
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("pipeline finished with error")
		os.Exit(1)
	}
	log.WithFields(fields).Info("pipeline finished")
}
