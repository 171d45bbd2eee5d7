package task

import (
	"errors"
	"strings"
	"testing"
)

func TestAddKeepsInsertionOrder(t *testing.T) {
	var l List
	descs := []string{"buy milk", "walk dog", "write report"}
	for _, d := range descs {
		l.Add(d)
	}

	if len(l) != len(descs) {
		t.Fatalf("length: got %d, want %d", len(l), len(descs))
	}
	for i, d := range descs {
		if l[i].Desc != d {
			t.Errorf("task %d: got %q, want %q", i, l[i].Desc, d)
		}
		if l[i].Done {
			t.Errorf("task %d: new task should not be done", i)
		}
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name    string
		idx     int
		wantErr bool
	}{
		{"first", 1, false},
		{"last", 3, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"past end", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := List{{Desc: "a"}, {Desc: "b"}, {Desc: "c"}}
			err := l.Complete(tt.idx)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSuchTask) {
					t.Fatalf("expected ErrNoSuchTask, got %v", err)
				}
				for i, task := range l {
					if task.Done {
						t.Errorf("task %d mutated on out-of-bounds complete", i)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("Complete(%d): %v", tt.idx, err)
			}
			for i, task := range l {
				want := i == tt.idx-1
				if task.Done != want {
					t.Errorf("task %d done: got %v, want %v", i, task.Done, want)
				}
			}
		})
	}
}

func TestRemoveShiftsLaterTasks(t *testing.T) {
	l := List{{Desc: "a"}, {Desc: "b"}, {Desc: "c"}}

	removed, err := l.Remove(2)
	if err != nil {
		t.Fatalf("Remove(2): %v", err)
	}
	if removed.Desc != "b" {
		t.Errorf("removed: got %q, want %q", removed.Desc, "b")
	}
	if len(l) != 2 {
		t.Fatalf("length after remove: got %d, want 2", len(l))
	}
	if l[0].Desc != "a" || l[1].Desc != "c" {
		t.Errorf("remaining tasks: got %q, %q; want a, c", l[0].Desc, l[1].Desc)
	}
}

func TestRemoveOutOfBounds(t *testing.T) {
	l := List{{Desc: "only"}}
	for _, idx := range []int{0, -3, 2, 5} {
		if _, err := l.Remove(idx); !errors.Is(err, ErrNoSuchTask) {
			t.Errorf("Remove(%d): expected ErrNoSuchTask, got %v", idx, err)
		}
	}
	if len(l) != 1 {
		t.Errorf("list mutated on out-of-bounds remove: length %d", len(l))
	}
}

func TestRenderPositionsAndMarkers(t *testing.T) {
	l := List{
		{Desc: "buy milk", Done: true},
		{Desc: "walk dog"},
	}

	var b strings.Builder
	l.Render(&b)

	want := "1. [✓] buy milk\n2. [ ] walk dog\n"
	if b.String() != want {
		t.Errorf("render:\ngot  %q\nwant %q", b.String(), want)
	}
}

func TestRenderEmpty(t *testing.T) {
	var b strings.Builder
	List{}.Render(&b)

	want := "No tasks yet. Use `add` to create one.\n"
	if b.String() != want {
		t.Errorf("render empty:\ngot  %q\nwant %q", b.String(), want)
	}
}
