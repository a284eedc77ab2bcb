package canopy

import "sync"

// TaskQueue marshals work onto the UI thread. Post may be called from any
// goroutine; Drain runs queued tasks on the calling goroutine, which must be
// the UI thread.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// Post queues fn. Nil functions are ignored.
func (q *TaskQueue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs every task queued before the call, in posting order, and
// returns how many ran. Tasks posted while draining run on the next Drain.
func (q *TaskQueue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}
