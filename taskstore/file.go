package taskstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ordino/ordino/task"
)

const (
	// TasksFile is the name of the JSONL file containing task records.
	TasksFile = "tasks.jsonl"

	// DependenciesFile is the name of the JSONL file containing edges.
	DependenciesFile = "dependencies.jsonl"

	// lockFile guards every read-modify-write across both data files, so
	// cycle checks and version checks see a consistent snapshot.
	lockFile = "lock"

	maxJSONLineBytes = 1024 * 1024
)

// File is a task.Store backed by JSONL files in a directory. All access is
// serialized through an exclusive file lock, making read-check-write
// sequences (cycle checks, version checks) atomic across processes.
type File struct {
	dir string
	now func() time.Time
}

var _ task.Store = (*File)(nil)

// Open opens (creating if necessary) the store directory.
func Open(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{dir: dir, now: time.Now}, nil
}

// Dir returns the store's directory.
func (f *File) Dir() string {
	return f.dir
}

// GetTask fetches a task by ID.
func (f *File) GetTask(id string) (*task.Task, error) {
	var found *task.Task
	err := f.withLock(func() error {
		tasks, err := readJSONL[task.Task](f.path(TasksFile))
		if err != nil {
			return err
		}
		found, err = findTask(tasks, id)
		return err
	})
	return found, err
}

// ListTasks returns all task records.
func (f *File) ListTasks() ([]task.Task, error) {
	var tasks []task.Task
	err := f.withLock(func() error {
		var err error
		tasks, err = readJSONL[task.Task](f.path(TasksFile))
		return err
	})
	return tasks, err
}

// CreateTask persists a new task record.
func (f *File) CreateTask(t *task.Task) error {
	return f.withLock(func() error {
		tasks, err := readJSONL[task.Task](f.path(TasksFile))
		if err != nil {
			return err
		}
		tasks, err = createTask(tasks, t, f.now())
		if err != nil {
			return err
		}
		return writeJSONL(f.path(TasksFile), tasks)
	})
}

// UpdateTask applies a version-checked update. The check and the version
// increment happen under the store lock, in the same write.
func (f *File) UpdateTask(t *task.Task, expectedVersion int) (*task.Task, error) {
	var updated *task.Task
	err := f.withLock(func() error {
		tasks, err := readJSONL[task.Task](f.path(TasksFile))
		if err != nil {
			return err
		}
		tasks, updated, err = updateTask(tasks, t, expectedVersion, f.now())
		if err != nil {
			return err
		}
		return writeJSONL(f.path(TasksFile), tasks)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task and cascades removal of edges touching it.
func (f *File) DeleteTask(id string) ([]string, error) {
	var dependents []string
	err := f.withLock(func() error {
		tasks, err := readJSONL[task.Task](f.path(TasksFile))
		if err != nil {
			return err
		}
		edges, err := readJSONL[task.Dependency](f.path(DependenciesFile))
		if err != nil {
			return err
		}

		tasks, edges, dependents, err = deleteTask(tasks, edges, id)
		if err != nil {
			return err
		}

		if err := writeJSONL(f.path(TasksFile), tasks); err != nil {
			return err
		}
		return writeJSONL(f.path(DependenciesFile), edges)
	})
	if err != nil {
		return nil, err
	}
	return dependents, nil
}

// GetEdge fetches a dependency edge by ID.
func (f *File) GetEdge(id string) (*task.Dependency, error) {
	var found *task.Dependency
	err := f.withLock(func() error {
		edges, err := readJSONL[task.Dependency](f.path(DependenciesFile))
		if err != nil {
			return err
		}
		found, err = findEdge(edges, id)
		return err
	})
	return found, err
}

// Edges returns the full edge set.
func (f *File) Edges() ([]task.Dependency, error) {
	var edges []task.Dependency
	err := f.withLock(func() error {
		var err error
		edges, err = readJSONL[task.Dependency](f.path(DependenciesFile))
		return err
	})
	return edges, err
}

// Dependencies returns the edges whose source is taskID.
func (f *File) Dependencies(taskID string) ([]task.Dependency, error) {
	edges, err := f.Edges()
	if err != nil {
		return nil, err
	}
	return edgesBySource(edges, taskID), nil
}

// Dependents returns the edges whose target is taskID.
func (f *File) Dependents(taskID string) ([]task.Dependency, error) {
	edges, err := f.Edges()
	if err != nil {
		return nil, err
	}
	return edgesByTarget(edges, taskID), nil
}

// CreateEdge persists a new dependency edge.
func (f *File) CreateEdge(d *task.Dependency) error {
	return f.withLock(func() error {
		tasks, err := readJSONL[task.Task](f.path(TasksFile))
		if err != nil {
			return err
		}
		edges, err := readJSONL[task.Dependency](f.path(DependenciesFile))
		if err != nil {
			return err
		}
		edges, err = createEdge(tasks, edges, d, f.now())
		if err != nil {
			return err
		}
		return writeJSONL(f.path(DependenciesFile), edges)
	})
}

// DeleteEdge removes a dependency edge by ID.
func (f *File) DeleteEdge(id string) error {
	return f.withLock(func() error {
		edges, err := readJSONL[task.Dependency](f.path(DependenciesFile))
		if err != nil {
			return err
		}
		edges, err = deleteEdge(edges, id)
		if err != nil {
			return err
		}
		return writeJSONL(f.path(DependenciesFile), edges)
	})
}

func (f *File) path(filename string) string {
	return filepath.Join(f.dir, filename)
}

// withLock executes fn while holding an exclusive lock on the store's lock
// file. Creates the file if it doesn't exist.
func (f *File) withLock(fn func() error) error {
	path := f.path(lockFile)

	handle, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer handle.Close()

	if err := syscall.Flock(int(handle.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(handle.Fd()), syscall.LOCK_UN)

	return fn()
}

// readJSONL reads all JSON objects from a JSONL file into a slice.
// A missing file reads as an empty store.
func readJSONL[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return readJSONLFromReader[T](file)
}

func readJSONLFromReader[T any](reader io.Reader) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNum, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return items, nil
}

// writeJSONL writes a slice of items to a JSONL file, overwriting any
// existing content via temp file and atomic rename.
func writeJSONL[T any](path string, items []T) error {
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	encoder := json.NewEncoder(file)
	for i, item := range items {
		if err := encoder.Encode(item); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("encode item %d: %w", i, err)
		}
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
