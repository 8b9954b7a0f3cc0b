package canvas

import (
	"slices"
	"time"
)

type taskState int

const (
	taskPending taskState = iota
	taskFired
	taskCancelled
)

// Task is a one-shot callback scheduled on a [Scheduler].
type Task struct {
	due   time.Time
	seq   int
	fn    func()
	state taskState
}

// Cancel prevents a pending task from firing. Cancelling a nil, fired or
// already cancelled task does nothing.
func (t *Task) Cancel() {
	if t != nil && t.state == taskPending {
		t.state = taskCancelled
	}
}

// Pending reports whether the task has neither fired nor been cancelled.
func (t *Task) Pending() bool { return t != nil && t.state == taskPending }

// Due returns the time at which the task fires.
func (t *Task) Due() time.Time { return t.due }

// Scheduler runs one-shot tasks when time is advanced past their due time.
// It never starts goroutines or timers; the owner calls Advance.
type Scheduler struct {
	tasks []*Task
	seq   int
}

// After schedules fn to run once d has elapsed since now.
func (s *Scheduler) After(now time.Time, d time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{due: now.Add(d), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance fires every pending task due at or before now, earliest first,
// and returns how many fired. Tasks scheduled by a firing task wait for the
// next Advance.
func (s *Scheduler) Advance(now time.Time) int {
	var due, keep []*Task
	for _, t := range s.tasks {
		switch {
		case t.state != taskPending:
		case !t.due.After(now):
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	s.tasks = keep
	slices.SortFunc(due, func(a, b *Task) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return a.seq - b.seq
	})
	fired := 0
	for _, t := range due {
		// An earlier task in this batch may have cancelled it.
		if t.state != taskPending {
			continue
		}
		t.state = taskFired
		t.fn()
		fired++
	}
	return fired
}

// Next returns the due time of the earliest pending task.
func (s *Scheduler) Next() (time.Time, bool) {
	var next time.Time
	found := false
	for _, t := range s.tasks {
		if t.state == taskPending && (!found || t.due.Before(next)) {
			next, found = t.due, true
		}
	}
	return next, found
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.state == taskPending {
			n++
		}
	}
	return n
}
