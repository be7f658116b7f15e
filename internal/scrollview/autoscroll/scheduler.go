package autoscroll

import (
	"sort"
	"time"
)

// Handle cancels a scheduled task. Cancelling twice, or after the task ran,
// does nothing.
type Handle interface {
	Cancel()
}

// Scheduler runs tasks later on the same event loop that owns the widget.
// A zero delay means the next turn of the loop.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
	Now() time.Time
}

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing runs
// until Advance or RunPending is called.
type ManualScheduler struct {
	epoch time.Time
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
	owner     *ManualScheduler
}

func (t *manualTask) Cancel() {
	t.cancelled = true
	t.owner.remove(t)
}

// NewManualScheduler creates a scheduler whose clock starts at zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{epoch: time.Unix(0, 0)}
}

// Schedule queues fn to run once the clock reaches now+delay
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &manualTask{due: s.now + delay, seq: s.seq, fn: fn, owner: s}
	s.tasks = append(s.tasks, t)
	return t
}

// Now returns the virtual wall clock
func (s *ManualScheduler) Now() time.Time {
	return s.epoch.Add(s.now)
}

// Elapsed returns the virtual time elapsed since creation
func (s *ManualScheduler) Elapsed() time.Duration {
	return s.now
}

// Pending is the number of tasks waiting to run
func (s *ManualScheduler) Pending() int {
	return len(s.tasks)
}

// RunPending runs every task already due, including tasks those tasks
// schedule with zero delay
func (s *ManualScheduler) RunPending() int {
	return s.Advance(0)
}

// Advance moves the clock forward by d, running due tasks in time order.
// It returns the number of tasks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	ran := 0
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.remove(t)
		if t.due > s.now {
			s.now = t.due
		}
		ran++
		t.fn()
	}
	s.now = target
	return ran
}

func (s *ManualScheduler) nextDue(limit time.Duration) *manualTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].due > limit {
		return nil
	}
	return s.tasks[0]
}

func (s *ManualScheduler) remove(t *manualTask) {
	for i, task := range s.tasks {
		if task == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
