// Package engine interprets task commands against an in-memory list,
// delegating persistence to the store.
//
// Out-of-range indices are user errors: the engine reports them on its
// output writer, leaves the list and the file untouched, and returns nil.
// Only I/O failures (a save that cannot be written) surface as errors.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"godo/internal/store"
	"godo/internal/task"
)

// Engine applies commands to a task list and keeps the store in sync.
type Engine struct {
	store *store.Store
	tasks task.List
	out   io.Writer
	log   *log.Logger
}

// New creates an engine over an already-loaded task list. User-facing
// messages go to out; diagnostics go to logger.
func New(st *store.Store, tasks task.List, out io.Writer, logger *log.Logger) *Engine {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{store: st, tasks: tasks, out: out, log: logger}
}

// Tasks returns the current in-memory list.
func (e *Engine) Tasks() task.List {
	return e.tasks
}

// List renders every task with its 1-based position.
func (e *Engine) List() {
	e.tasks.Render(e.out)
}

// Add appends a new pending task and persists the list.
func (e *Engine) Add(desc string) error {
	e.tasks.Add(desc)
	if err := e.store.Save(e.tasks); err != nil {
		return err
	}
	e.log.Debug("added task", "desc", desc, "total", len(e.tasks))
	fmt.Fprintf(e.out, "Added: %q\n", desc)
	return nil
}

// Complete marks the task at 1-based idx as done and persists. An
// out-of-range idx is reported and nothing is saved.
func (e *Engine) Complete(idx int) error {
	if err := e.tasks.Complete(idx); err != nil {
		if errors.Is(err, task.ErrNoSuchTask) {
			fmt.Fprintf(e.out, "No task with ID #%d\n", idx)
			return nil
		}
		return err
	}
	if err := e.store.Save(e.tasks); err != nil {
		return err
	}
	e.log.Debug("completed task", "id", idx)
	fmt.Fprintf(e.out, "Completed task #%d\n", idx)
	return nil
}

// Remove deletes the task at 1-based idx and persists. An out-of-range
// idx is reported and nothing is saved.
func (e *Engine) Remove(idx int) error {
	removed, err := e.tasks.Remove(idx)
	if err != nil {
		if errors.Is(err, task.ErrNoSuchTask) {
			fmt.Fprintf(e.out, "No task with ID #%d\n", idx)
			return nil
		}
		return err
	}
	if err := e.store.Save(e.tasks); err != nil {
		return err
	}
	e.log.Debug("removed task", "id", idx, "desc", removed.Desc)
	fmt.Fprintf(e.out, "Removed: %q\n", removed.Desc)
	return nil
}
