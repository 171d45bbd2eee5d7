// Package cli implements the command structure for godo.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"godo/internal/config"
	"godo/internal/engine"
	"godo/internal/logging"
	"godo/internal/repl"
	"godo/internal/store"
	"godo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the godo CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("godo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(os.Stderr, cfg)
	st := store.New(cfg.TodoFile, cfg.SchemaFile, logger)

	// No subcommand opens the text-box editor.
	subcommand := "edit"
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "edit":
		return editCommand(ctx, st, remaining)
	case "list":
		return listCommand(st, logger, remaining)
	case "add":
		return addCommand(st, logger, remaining)
	case "done", "complete":
		return completeCommand(st, logger, subcommand, remaining)
	case "rm", "remove":
		return removeCommand(st, logger, subcommand, remaining)
	case "repl":
		return replCommand(st, logger, remaining)
	case "doctor":
		return doctorCommand(cfg, st, remaining)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// loadEngine loads the task file and wraps it in an engine writing to
// stdout. A malformed task file is fatal here, before any command runs.
func loadEngine(st *store.Store, logger *log.Logger) (*engine.Engine, error) {
	tasks, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("loading task file: %w", err)
	}
	return engine.New(st, tasks, os.Stdout, logger), nil
}

func editCommand(ctx context.Context, st *store.Store, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	tasks, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	return ui.RunEditor(ctx, st, tasks)
}

func listCommand(st *store.Store, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	eng, err := loadEngine(st, logger)
	if err != nil {
		return err
	}
	eng.List()
	return nil
}

func addCommand(st *store.Store, logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("add requires a task description")
	}
	eng, err := loadEngine(st, logger)
	if err != nil {
		return err
	}
	return eng.Add(strings.Join(args, " "))
}

func completeCommand(st *store.Store, logger *log.Logger, name string, args []string) error {
	idx, err := parseIndexArg(name, args)
	if err != nil {
		return err
	}
	eng, err := loadEngine(st, logger)
	if err != nil {
		return err
	}
	return eng.Complete(idx)
}

func removeCommand(st *store.Store, logger *log.Logger, name string, args []string) error {
	idx, err := parseIndexArg(name, args)
	if err != nil {
		return err
	}
	eng, err := loadEngine(st, logger)
	if err != nil {
		return err
	}
	return eng.Remove(idx)
}

// parseIndexArg extracts the single task id argument for done/rm. A
// missing or non-numeric id is a reported user error, never a panic.
func parseIndexArg(name string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s requires a task id", name)
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("task id must be a number, got %q", args[0])
	}
	return idx, nil
}

func replCommand(st *store.Store, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	eng, err := loadEngine(st, logger)
	if err != nil {
		return err
	}
	return repl.Run(eng, os.Stdin, os.Stdout)
}

// doctorCommand checks config and task file validity.
func doctorCommand(cfg *config.Config, st *store.Store, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	fmt.Println("Godo Doctor")
	fmt.Println("===========")
	fmt.Println()

	fmt.Println("Config:")
	fmt.Printf("  Task file:   %s\n", cfg.TodoFile)
	fmt.Printf("  Schema file: %s\n", cfg.SchemaFile)
	fmt.Printf("  Log level:   %s\n", cfg.LogLevel)
	fmt.Println()

	result := st.Check()

	fmt.Printf("Task file: %s\n", st.Path)
	switch {
	case result.Err != nil:
		fmt.Printf("  ❌ %v\n", result.Err)
	case !result.Exists:
		fmt.Println("  ⚠️  Not found (will be created on first add)")
	default:
		fmt.Println("  ✅ OK")
		fmt.Printf("  Tasks: %d\n", result.TaskCount)
		if result.UsedSchema {
			fmt.Println("  ✅ Validated against schema")
		} else {
			fmt.Println("  ⚠️  Schema file not found, validation skipped")
		}
	}
	fmt.Println()

	if result.Err != nil {
		fmt.Println("⚠️  Some checks failed.")
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Println("✅ All checks passed!")
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("godo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Godo - A minimal personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  godo [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  (none)            Open the text-box editor")
	fmt.Fprintln(w, "  list              List all tasks")
	fmt.Fprintln(w, "  add <text...>     Add a new task")
	fmt.Fprintln(w, "  done <task_id>    Mark task as completed (alias: complete)")
	fmt.Fprintln(w, "  rm <task_id>      Remove a task (alias: remove)")
	fmt.Fprintln(w, "  repl              Interactive command prompt")
	fmt.Fprintln(w, "  edit              Open the text-box editor")
	fmt.Fprintln(w, "  doctor            Check config and task file validity")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
