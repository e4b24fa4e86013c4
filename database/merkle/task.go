// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package merkle

import (
	"runtime"
	"sync/atomic"

	"github.com/0xsoniclabs/tracy"
)

// task is a unit of work which may depend on the completion of other tasks.
// Tasks form a tree: each task may have a parent which is waiting for it,
// and a parent only becomes ready once all of its children are done.
type task struct {
	action          func()       // < the action to perform
	numDependencies atomic.Int32 // < number of children still to complete
	parentTask      *task        // < optional task waiting for this one
}

func newTask(action func(), numDependencies int) *task {
	t := &task{action: action}
	t.numDependencies.Store(int32(numDependencies))
	return t
}

// run executes the task's action and returns the parent task if it became
// ready to run as a consequence, nil otherwise.
func (t *task) run() *task {
	t.action()
	if t.parentTask == nil {
		return nil
	}
	if t.parentTask.numDependencies.Add(-1) != 0 {
		return nil
	}
	return t.parentTask
}

// sequentialTaskLimit is the number of tasks below which tasks are processed
// by the calling goroutine alone.
const sequentialTaskLimit = 20

// runTasks executes the given tasks, respecting their dependencies. For small
// task lists the tasks are run in the given order, which must then list each
// parent after its children.
func runTasks(tasks []*task) {
	if len(tasks) < sequentialTaskLimit {
		for _, task := range tasks {
			task.action()
		}
		return
	}

	ready := make([]*task, 0, len(tasks))
	for _, task := range tasks {
		if task.numDependencies.Load() == 0 {
			ready = append(ready, task)
		}
	}

	var next atomic.Int32
	var completed atomic.Int32
	worker := func() {
		zone := tracy.ZoneBegin("tasks::worker")
		defer zone.End()
		for {
			pos := int(next.Add(1) - 1)
			if pos >= len(ready) {
				return
			}
			// Parents becoming ready are run by the worker completing their
			// last child.
			for task := ready[pos]; task != nil; task = task.run() {
				completed.Add(1)
			}
		}
	}

	numWorkers := min(runtime.NumCPU(), 8)
	for range numWorkers - 1 {
		go worker()
	}
	worker()

	// Tasks are short; other workers are expected to finish soon.
	zone := tracy.ZoneBegin("tasks::wait_for_completion")
	for int(completed.Load()) < len(tasks) {
		runtime.Gosched()
	}
	zone.End()
}
