// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package taskgroup

import "github.com/sourcegraph/conc"

// Task is a long-running agent component that can be asked to stop.
type Task interface {
	Stop(force bool)
}

type Group struct {
	tasks []Task
	wg    *conc.WaitGroup
}

func New() *Group {
	return &Group{
		wg: &conc.WaitGroup{},
	}
}

// Add registers a task for shutdown signaling without running it.
func (g *Group) Add(task Task) *Group {
	g.tasks = append(g.tasks, task)
	return g
}

func (g *Group) Go(fn func()) {
	g.wg.Go(fn)
}

func (g *Group) Stop(force bool) {
	for _, task := range g.tasks {
		task.Stop(force)
	}
}

func (g *Group) Wait() {
	g.wg.Wait()
}
