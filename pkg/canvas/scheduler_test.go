package canvas

import (
	"slices"
	"testing"
	"time"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }

func TestSchedulerFiresInDueOrder(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(t0, 300*time.Millisecond, func() { got = append(got, "c") })
	s.After(t0, 100*time.Millisecond, func() { got = append(got, "a") })
	s.After(t0, 100*time.Millisecond, func() { got = append(got, "b") })

	if n := s.Advance(ms(99)); n != 0 {
		t.Fatalf("Advance(99ms) fired %d, want 0", n)
	}
	if n := s.Advance(ms(200)); n != 2 {
		t.Fatalf("Advance(200ms) fired %d, want 2", n)
	}
	if n := s.Advance(ms(300)); n != 1 {
		t.Fatalf("Advance(300ms) fired %d, want 1", n)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	fired := false
	task := s.After(t0, time.Second, func() { fired = true })
	if !task.Pending() {
		t.Fatal("new task not pending")
	}
	task.Cancel()
	s.Advance(ms(5000))
	if fired {
		t.Error("cancelled task fired")
	}
	if task.Pending() {
		t.Error("cancelled task still pending")
	}

	var nilTask *Task
	nilTask.Cancel()
	if nilTask.Pending() {
		t.Error("nil task pending")
	}
}

func TestSchedulerCancelWithinBatch(t *testing.T) {
	var s Scheduler
	var second *Task
	secondFired := false
	s.After(t0, 10*time.Millisecond, func() { second.Cancel() })
	second = s.After(t0, 20*time.Millisecond, func() { secondFired = true })

	if n := s.Advance(ms(50)); n != 1 {
		t.Errorf("Advance fired %d, want 1", n)
	}
	if secondFired {
		t.Error("task cancelled by an earlier task in the batch fired")
	}
}

func TestSchedulerNext(t *testing.T) {
	var s Scheduler
	if _, ok := s.Next(); ok {
		t.Fatal("Next() on empty scheduler reported a task")
	}
	late := s.After(t0, 2*time.Second, func() {})
	early := s.After(t0, time.Second, func() {})
	if got, _ := s.Next(); !got.Equal(early.Due()) {
		t.Errorf("Next() = %v, want %v", got, early.Due())
	}
	early.Cancel()
	if got, _ := s.Next(); !got.Equal(late.Due()) {
		t.Errorf("Next() after cancel = %v, want %v", got, late.Due())
	}
}
