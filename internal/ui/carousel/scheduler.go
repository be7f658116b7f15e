package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pageloop/internal/scrollview/autoscroll"
)

// taskMsg fires a scheduled task on the program's event loop
type taskMsg struct {
	owner string
	id    int
}

type task struct {
	id    int
	delay time.Duration
	fn    func()
	sched *Scheduler
}

func (t *task) Cancel() {
	delete(t.sched.tasks, t.id)
}

// Scheduler turns widget timers into bubbletea commands. Every scheduled
// task becomes a tea.Tick whose message runs the task on the Update loop,
// unless the task was cancelled in the meantime.
type Scheduler struct {
	owner  string
	seq    int
	tasks  map[int]*task
	queued []*task
	now    func() time.Time
}

// NewScheduler creates a scheduler whose messages are tagged with owner
func NewScheduler(owner string, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{owner: owner, tasks: make(map[int]*task), now: now}
}

// Schedule implements autoscroll.Scheduler
func (s *Scheduler) Schedule(delay time.Duration, fn func()) autoscroll.Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{id: s.seq, delay: delay, fn: fn, sched: s}
	s.tasks[t.id] = t
	s.queued = append(s.queued, t)
	return t
}

// Now implements autoscroll.Scheduler
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// Cmd returns the commands for tasks scheduled since the last call
func (s *Scheduler) Cmd() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, t := range s.queued {
		if _, live := s.tasks[t.id]; !live {
			continue
		}
		msg := taskMsg{owner: s.owner, id: t.id}
		if t.delay == 0 {
			cmds = append(cmds, func() tea.Msg { return msg })
			continue
		}
		cmds = append(cmds, tea.Tick(t.delay, func(time.Time) tea.Msg { return msg }))
	}
	s.queued = s.queued[:0]
	return tea.Batch(cmds...)
}

// run executes the task a message refers to. It reports false for
// cancelled tasks and foreign messages.
func (s *Scheduler) run(msg taskMsg) bool {
	if msg.owner != s.owner {
		return false
	}
	t, ok := s.tasks[msg.id]
	if !ok {
		return false
	}
	delete(s.tasks, msg.id)
	t.fn()
	return true
}

// Pending is the number of tasks not yet run or cancelled
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
