// Package repl implements the interactive line-oriented front end.
//
// The loop is single-threaded: print the command menu, read one line,
// tokenize on whitespace, dispatch on the first token. Missing arguments
// trigger a follow-up prompt instead of an error. The loop ends on
// exit/quit or when the input reaches EOF.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"godo/internal/engine"
)

const helpText = `Usage:
  list
      List all tasks.
  add "task description"
      Add a new task.
  done <task_id>
      Mark task as completed.
  rm <task_id>
      Remove a task.
  help
      Show this help message.
  exit
      Leave the prompt.
`

// Run drives the interactive loop, reading commands from in and writing
// prompts and results to out. Returns nil on exit/quit or EOF; only I/O
// failures are errors.
func Run(eng *engine.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintln(out, "\nCommands: list, add, done, rm, help, exit")
		fmt.Fprint(out, "Enter command: ")

		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd := strings.ToLower(fields[0])

		switch cmd {
		case "list":
			eng.List()
		case "add":
			desc := strings.Join(fields[1:], " ")
			if len(fields) == 1 {
				var ok bool
				desc, ok = prompt(scanner, out, "Task description: ")
				if !ok {
					return scanner.Err()
				}
			}
			if err := eng.Add(desc); err != nil {
				return err
			}
		case "done", "complete":
			idx, ok, err := readIndex(scanner, out, fields, "Task ID to complete: ")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := eng.Complete(idx); err != nil {
				return err
			}
		case "rm", "remove":
			idx, ok, err := readIndex(scanner, out, fields, "Task ID to remove: ")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := eng.Remove(idx); err != nil {
				return err
			}
		case "help":
			fmt.Fprint(out, helpText)
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		default:
			fmt.Fprintf(out, "Unknown command: %s\n", cmd)
			fmt.Fprint(out, helpText)
		}
	}

	return scanner.Err()
}

// readIndex extracts a task index from the command arguments, prompting
// when the argument is missing or not a number. ok is false when no
// usable index was obtained (the user is told why, the command is
// skipped).
func readIndex(scanner *bufio.Scanner, out io.Writer, fields []string, promptText string) (idx int, ok bool, err error) {
	if len(fields) > 1 {
		if n, numeric := parseIndex(fields[1]); numeric {
			return n, true, nil
		}
	}

	answer, alive := prompt(scanner, out, promptText)
	if !alive {
		return 0, false, scanner.Err()
	}
	if n, numeric := parseIndex(answer); numeric {
		return n, true, nil
	}
	fmt.Fprintln(out, "Please enter a valid number.")
	return 0, false, nil
}

// prompt prints a follow-up prompt and reads one trimmed line. ok is
// false at EOF.
func prompt(scanner *bufio.Scanner, out io.Writer, text string) (answer string, ok bool) {
	fmt.Fprint(out, text)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// parseIndex accepts only unsigned decimal digits, mirroring the
// command surface: anything else falls back to the follow-up prompt.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
