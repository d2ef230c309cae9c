// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package taskgroup

import (
	"testing"
	"time"
)

// loopTask runs until Stop closes its done channel, like the publishers do.
type loopTask struct {
	done chan struct{}
}

func newLoopTask() *loopTask {
	return &loopTask{done: make(chan struct{})}
}

func (l *loopTask) Run() {
	<-l.done
}

func (l *loopTask) Stop(force bool) {
	close(l.done)
}

func TestStopUnblocksWait(t *testing.T) {
	group := New()

	task := newLoopTask()
	group.Add(task)
	group.Go(task.Run)

	waited := make(chan struct{})
	go func() {
		group.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned while the task was still running")
	case <-time.After(100 * time.Millisecond):
	}

	group.Stop(false)

	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait still blocked after Stop")
	}
}
