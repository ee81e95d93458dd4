// Package tracker is the in-memory workout session state machine: which
// day and exercise are active, which exercises were deferred, and the
// rest/break timers. Only done/completed marks reach the plan document;
// everything else lives and dies with the session.
package tracker

import (
	"workout-tracker/backend/internal/domain/plan"
)

// Phase makes the session state explicit instead of encoding it in
// nullable indices.
type Phase int

const (
	// PhaseIdle: no workout running.
	PhaseIdle Phase = iota
	// PhaseActive: a day is running and an exercise is selected
	// (Exercise may be -1 when every candidate is already done).
	PhaseActive
	// PhaseBreak: between exercises; BreakAfter names the slot just
	// finished, not the next one.
	PhaseBreak
)

// State is a snapshot of the session.
type State struct {
	Phase            Phase
	Day              int
	Exercise         int
	BreakAfter       int
	Skipped          []int
	JustCompletedDay int
}

func idleState() State {
	return State{Phase: PhaseIdle, Day: -1, Exercise: -1, BreakAfter: -1, JustCompletedDay: -1}
}

// PlanSource is the tracker's view of the plan engine.
type PlanSource interface {
	Current() *plan.WorkoutPlan
	Apply(plan.Transform)
}

// Notifier surfaces session-rule violations to the user; they are
// warnings, never errors.
type Notifier interface {
	CannotCancelWorkout()
}

type Tracker struct {
	source   PlanSource
	notifier Notifier
	rest     *Stopwatch
	brk      *Stopwatch
	state    State
}

func New(source PlanSource, notifier Notifier) *Tracker {
	return &Tracker{
		source:   source,
		notifier: notifier,
		rest:     NewStopwatch(),
		brk:      NewStopwatch(),
		state:    idleState(),
	}
}

// State returns a copy; the skipped queue is detached.
func (t *Tracker) State() State {
	s := t.state
	s.Skipped = append([]int(nil), t.state.Skipped...)
	return s
}

func (t *Tracker) RestStopwatch() *Stopwatch  { return t.rest }
func (t *Tracker) BreakStopwatch() *Stopwatch { return t.brk }

// findNext applies the one selection policy used everywhere: the head of
// the skipped queue wins, otherwise the first not-done exercise in order.
func findNext(day *plan.WorkoutDay, skipped []int) int {
	if len(skipped) > 0 {
		return skipped[0]
	}
	for i, ex := range day.Exercises {
		if !ex.IsDone {
			return i
		}
	}
	return -1
}

func (t *Tracker) day(dayIndex int) *plan.WorkoutDay {
	p := t.source.Current()
	if p == nil {
		return nil
	}
	days := p.ActiveDays()
	if dayIndex < 0 || dayIndex >= len(days) {
		return nil
	}
	return &days[dayIndex]
}

// StartWorkout activates a day, selecting its first not-done exercise.
func (t *Tracker) StartWorkout(dayIndex int) {
	day := t.day(dayIndex)
	if day == nil {
		return
	}

	next := -1
	for i, ex := range day.Exercises {
		if !ex.IsDone {
			next = i
			break
		}
	}

	just := t.state.JustCompletedDay
	t.state = idleState()
	t.state.Phase = PhaseActive
	t.state.Day = dayIndex
	t.state.Exercise = next
	t.state.JustCompletedDay = just
	t.brk.Reset()
}

// CancelWorkout returns to idle, but only while the day has no done
// exercise; otherwise the user is told the session cannot be discarded.
func (t *Tracker) CancelWorkout(dayIndex int) {
	if t.state.Phase == PhaseIdle || t.state.Day != dayIndex {
		return
	}
	day := t.day(dayIndex)
	if day == nil {
		return
	}

	for _, ex := range day.Exercises {
		if ex.IsDone {
			if t.notifier != nil {
				t.notifier.CannotCancelWorkout()
			}
			return
		}
	}

	t.Reset()
}

// MarkExerciseDone records the done mark on the plan and advances the
// session: into a break when more work remains, back to idle with a
// completion flag when the day is finished.
func (t *Tracker) MarkExerciseDone(dayIndex, exIndex int) {
	t.rest.Reset()

	day := t.day(dayIndex)
	if day == nil || exIndex < 0 || exIndex >= len(day.Exercises) {
		return
	}

	// Evaluate the day as it will look after this write.
	day.Exercises[exIndex].IsDone = true
	skipped := removeIndex(t.state.Skipped, exIndex)
	next := findNext(day, skipped)
	complete := next == -1

	t.source.Apply(plan.CompleteExercise(dayIndex, exIndex, complete))

	if complete {
		t.state = idleState()
		t.state.JustCompletedDay = dayIndex
		t.brk.Reset()
		return
	}

	// The break is shown for the slot just finished; EndBreak advances.
	t.state.Phase = PhaseBreak
	t.state.Day = dayIndex
	t.state.Exercise = -1
	t.state.BreakAfter = exIndex
	t.state.Skipped = skipped
	t.brk.Start()
}

// EndBreak advances to the next exercise by the same skipped-head-first
// rule and stops showing the break timer.
func (t *Tracker) EndBreak() {
	if t.state.Phase != PhaseBreak {
		return
	}
	day := t.day(t.state.Day)
	if day == nil {
		return
	}

	t.state.Phase = PhaseActive
	t.state.Exercise = findNext(day, t.state.Skipped)
	t.state.BreakAfter = -1
	t.brk.Reset()
}

// UndoMarkDone reverts a done mark and re-activates that exact slot, even
// when a different day was active. Any break in progress is cancelled.
func (t *Tracker) UndoMarkDone(dayIndex, exIndex int) {
	day := t.day(dayIndex)
	if day == nil || exIndex < 0 || exIndex >= len(day.Exercises) {
		return
	}

	t.source.Apply(plan.UndoExercise(dayIndex, exIndex))

	// Re-activating always ends any break, so BreakAfter never leaks into
	// an active state.
	if t.state.Phase == PhaseBreak {
		t.brk.Reset()
	}
	t.state.Phase = PhaseActive
	t.state.Day = dayIndex
	t.state.Exercise = exIndex
	t.state.BreakAfter = -1
}

// SkipExercise defers an exercise to the back of the queue and activates
// the first exercise that is neither done nor skipped. When nothing fresh
// remains the oldest skip is resurfaced rather than leaving nothing
// active.
func (t *Tracker) SkipExercise(dayIndex, exIndex int) {
	day := t.day(dayIndex)
	if day == nil || exIndex < 0 || exIndex >= len(day.Exercises) {
		return
	}

	t.rest.Reset()
	t.brk.Reset()

	skipped := append(t.state.Skipped, exIndex)

	next := -1
	for i, ex := range day.Exercises {
		if !ex.IsDone && !containsIndex(skipped, i) {
			next = i
			break
		}
	}
	if next == -1 {
		next = skipped[0]
	}

	t.state.Phase = PhaseActive
	t.state.Day = dayIndex
	t.state.Exercise = next
	t.state.BreakAfter = -1
	t.state.Skipped = skipped
}

// ResetJustCompletedDay acknowledges the celebration flag.
func (t *Tracker) ResetJustCompletedDay() {
	t.state.JustCompletedDay = -1
}

// Reset clears all session state and both stopwatches. Called on cancel,
// logout, split switch and reset-week.
func (t *Tracker) Reset() {
	t.state = idleState()
	t.rest.Reset()
	t.brk.Reset()
}

func removeIndex(list []int, v int) []int {
	out := make([]int, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func containsIndex(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
