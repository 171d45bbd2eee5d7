// Package store persists the task list as a JSON file.
//
// The file holds a single JSON array of {"desc": string, "done": bool}
// objects, 2-space indented, with a trailing newline. The whole file is
// rewritten on every save; there is no locking and no atomic rename,
// matching the single-user, single-process scope of the tool.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"godo/internal/task"
)

// Store reads and writes the task file at Path. When SchemaPath names an
// existing JSON Schema file, loaded data is validated against it; a
// missing schema file degrades to plain decoding.
type Store struct {
	Path       string
	SchemaPath string
	Log        *log.Logger
}

// New creates a store for the given task file and optional schema file.
func New(path, schemaPath string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Store{Path: path, SchemaPath: schemaPath, Log: logger}
}

// Load reads the task file. A missing file yields an empty list; a file
// that exists but cannot be parsed or fails schema validation is an
// error.
func (s *Store) Load() (task.List, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.Log.Debug("task file not found, starting empty", "path", s.Path)
			return task.List{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	if err := s.validate(data); err != nil {
		return nil, err
	}

	var tasks task.List
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}

	s.Log.Debug("loaded task file", "path", s.Path, "tasks", len(tasks))
	return tasks, nil
}

// Save writes the full list to the task file with 2-space indentation,
// overwriting any previous content.
func (s *Store) Save(tasks task.List) error {
	if tasks == nil {
		tasks = task.List{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	s.Log.Debug("saved task file", "path", s.Path, "tasks", len(tasks))
	return nil
}

// validate checks raw file data against the configured schema, if any.
func (s *Store) validate(data []byte) error {
	schema, err := s.compileSchema()
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse task file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("task file does not match schema %s: %w", s.SchemaPath, err)
	}
	return nil
}

// compileSchema compiles the configured schema file. Returns (nil, nil)
// when no schema is configured or the schema file does not exist.
func (s *Store) compileSchema() (*jsonschema.Schema, error) {
	if s.SchemaPath == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(s.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("resolve schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			s.Log.Debug("schema file not found, skipping validation", "path", absPath)
			return nil, nil
		}
		return nil, fmt.Errorf("stat schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", absPath, err)
	}
	return schema, nil
}

// CheckResult reports the store's health for the doctor command.
type CheckResult struct {
	Exists     bool
	TaskCount  int
	UsedSchema bool
	Err        error
}

// Check inspects the task file without mutating anything.
func (s *Store) Check() CheckResult {
	var result CheckResult

	info, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return result
		}
		result.Err = fmt.Errorf("stat task file: %w", err)
		return result
	}
	result.Exists = true
	if info.IsDir() {
		result.Err = fmt.Errorf("task file path is a directory: %s", s.Path)
		return result
	}

	schema, err := s.compileSchema()
	if err != nil {
		result.Err = err
		return result
	}
	result.UsedSchema = schema != nil

	tasks, err := s.Load()
	if err != nil {
		result.Err = err
		return result
	}
	result.TaskCount = len(tasks)
	return result
}
