// Package task defines the task list and its operations.
//
// A task is a description plus a done flag. Tasks have no identity beyond
// their 1-based position in the list: removing a task shifts every later
// task down by one, and any previously shown position may now refer to a
// different task. The on-disk representation is handled by the store
// package; this package is purely in-memory.
package task

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoSuchTask is returned when a 1-based index is outside the list.
// Callers translate it into a user message rather than failing the
// process.
var ErrNoSuchTask = errors.New("no task with that id")

// Task is a single to-do item.
type Task struct {
	Desc string `json:"desc"`
	Done bool   `json:"done"`
}

// List is an ordered sequence of tasks. Position is identity.
type List []Task

// Add appends a new pending task with the given description.
func (l *List) Add(desc string) {
	*l = append(*l, Task{Desc: desc, Done: false})
}

// Complete marks the task at 1-based index idx as done.
// Returns ErrNoSuchTask without mutating when idx is out of bounds.
func (l List) Complete(idx int) error {
	if idx < 1 || idx > len(l) {
		return fmt.Errorf("complete task %d: %w", idx, ErrNoSuchTask)
	}
	l[idx-1].Done = true
	return nil
}

// Remove deletes the task at 1-based index idx, shifting later tasks
// down by one position. Returns the removed task, or ErrNoSuchTask
// without mutating when idx is out of bounds.
func (l *List) Remove(idx int) (Task, error) {
	if idx < 1 || idx > len(*l) {
		return Task{}, fmt.Errorf("remove task %d: %w", idx, ErrNoSuchTask)
	}
	removed := (*l)[idx-1]
	*l = append((*l)[:idx-1], (*l)[idx:]...)
	return removed, nil
}

// Render writes the list to w, one task per line with its 1-based
// position and a completion marker. An empty list renders a hint
// instead.
func (l List) Render(w io.Writer) {
	if len(l) == 0 {
		fmt.Fprintln(w, "No tasks yet. Use `add` to create one.")
		return
	}
	for i, t := range l {
		status := " "
		if t.Done {
			status = "✓"
		}
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, status, t.Desc)
	}
}
