// Package cli provides tests for CLI command handlers.
package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp runs the rest of the test from a fresh temp directory so the
// default todo.json path and project config discovery are isolated.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return tmpDir
}

func readTasks(t *testing.T, dir string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "todo.json"))
	if err != nil {
		t.Fatalf("reading task file: %v", err)
	}
	var tasks []map[string]interface{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.Fatalf("parsing task file: %v", err)
	}
	return tasks
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("shows help with --help flag", func(t *testing.T) {
		chdirTemp(t)
		if err := Run(ctx, []string{"--help"}); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		chdirTemp(t)
		if err := Run(ctx, []string{"help"}); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		chdirTemp(t)
		if err := Run(ctx, []string{"--version"}); err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		chdirTemp(t)
		err := Run(ctx, []string{"frobnicate"})
		if err == nil {
			t.Fatal("expected error for unknown command")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("list without task file succeeds", func(t *testing.T) {
		chdirTemp(t)
		if err := Run(ctx, []string{"list"}); err != nil {
			t.Errorf("list with no task file should succeed, got %v", err)
		}
	})
}

func TestAddCreatesTaskFile(t *testing.T) {
	ctx := context.Background()
	tmpDir := chdirTemp(t)

	if err := Run(ctx, []string{"add", "buy", "milk"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	tasks := readTasks(t, tmpDir)
	if len(tasks) != 1 {
		t.Fatalf("task count: got %d, want 1", len(tasks))
	}
	if tasks[0]["desc"] != "buy milk" {
		t.Errorf("desc: got %q, want %q", tasks[0]["desc"], "buy milk")
	}
	if tasks[0]["done"] != false {
		t.Errorf("done: got %v, want false", tasks[0]["done"])
	}
}

func TestDoneAndRemove(t *testing.T) {
	ctx := context.Background()
	tmpDir := chdirTemp(t)

	if err := Run(ctx, []string{"add", "buy milk"}); err != nil {
		t.Fatal(err)
	}

	if err := Run(ctx, []string{"done", "1"}); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	tasks := readTasks(t, tmpDir)
	if tasks[0]["done"] != true {
		t.Errorf("task not marked done: %+v", tasks[0])
	}

	if err := Run(ctx, []string{"rm", "1"}); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if tasks := readTasks(t, tmpDir); len(tasks) != 0 {
		t.Errorf("task not removed: %+v", tasks)
	}
}

func TestOutOfRangeIndexIsNotAnError(t *testing.T) {
	ctx := context.Background()
	tmpDir := chdirTemp(t)

	if err := Run(ctx, []string{"add", "buy milk"}); err != nil {
		t.Fatal(err)
	}

	// Reported on stdout, exit code stays zero, file untouched.
	if err := Run(ctx, []string{"done", "5"}); err != nil {
		t.Errorf("out-of-range done should not be an error, got %v", err)
	}
	tasks := readTasks(t, tmpDir)
	if len(tasks) != 1 || tasks[0]["done"] != false {
		t.Errorf("task file changed by invalid done: %+v", tasks)
	}
}

func TestUserErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add without description", []string{"add"}, "requires a task description"},
		{"done without id", []string{"done"}, "requires a task id"},
		{"rm without id", []string{"rm"}, "requires a task id"},
		{"done with non-numeric id", []string{"done", "abc"}, "must be a number"},
		{"rm with non-numeric id", []string{"rm", "x"}, "must be a number"},
		{"list with extra args", []string{"list", "extra"}, "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			err := Run(ctx, tt.args)
			if err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestMalformedTaskFileIsFatal(t *testing.T) {
	ctx := context.Background()
	tmpDir := chdirTemp(t)

	if err := os.WriteFile(filepath.Join(tmpDir, "todo.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Run(ctx, []string{"list"})
	if err == nil {
		t.Fatal("expected error for malformed task file")
	}
	if !strings.Contains(err.Error(), "task file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDoctor(t *testing.T) {
	ctx := context.Background()

	t.Run("passes with no task file", func(t *testing.T) {
		chdirTemp(t)
		if err := Run(ctx, []string{"doctor"}); err != nil {
			t.Errorf("doctor should pass with a missing task file, got %v", err)
		}
	})

	t.Run("fails on malformed task file", func(t *testing.T) {
		tmpDir := chdirTemp(t)
		if err := os.WriteFile(filepath.Join(tmpDir, "todo.json"), []byte("nope"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Run(ctx, []string{"doctor"}); err == nil {
			t.Error("expected doctor to fail on malformed task file")
		}
	})
}

func TestFileFlagOverridesDefaultPath(t *testing.T) {
	ctx := context.Background()
	tmpDir := chdirTemp(t)

	custom := filepath.Join(tmpDir, "elsewhere.json")
	if err := Run(ctx, []string{"-file", custom, "add", "buy milk"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := os.Stat(custom); err != nil {
		t.Errorf("custom task file not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "todo.json")); !os.IsNotExist(err) {
		t.Errorf("default task file should not exist, stat err: %v", err)
	}
}
