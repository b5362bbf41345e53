package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ordino/ordino/engine"
	"github.com/ordino/ordino/internal/config"
	"github.com/ordino/ordino/internal/paths"
	"github.com/ordino/ordino/task"
	"github.com/ordino/ordino/taskstore"
)

func projectRoot() (string, error) {
	return paths.WorkingDir()
}

func loadConfig() (*config.Config, string, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

// storeDir resolves the store directory: --dir beats ordino.toml beats
// the default. Relative paths are resolved against the project root.
func storeDir(cfg *config.Config, root string) string {
	dir := cfg.Store.Dir
	if rootDir != "" {
		dir = rootDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

func openStore() (*taskstore.File, *config.Config, error) {
	cfg, root, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := taskstore.Open(storeDir(cfg, root))
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func openEngine() (*engine.Engine, *config.Config, error) {
	store, cfg, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	var opts []engine.Option
	if rootVerbose {
		opts = append(opts, engine.WithLogger(engine.NewConsoleLogger(os.Stderr)))
	}
	return engine.New(store, opts...), cfg, nil
}

// resolveTaskID expands a (possibly partial) task ID to the full stored
// ID.
func resolveTaskID(e *engine.Engine, prefix string) (string, error) {
	tasks, err := e.ListTasks()
	if err != nil {
		return "", err
	}
	return task.NewIDIndex(tasks).Resolve(prefix)
}

func taskIDPrefixLengths(tasks []task.Task) map[string]int {
	return task.NewIDIndex(tasks).PrefixLengths()
}

func taskHighlighter(e *engine.Engine) (func(string) string, error) {
	tasks, err := e.ListTasks()
	if err != nil {
		return nil, err
	}
	return logHighlighter(taskIDPrefixLengths(tasks)), nil
}

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimRight(string(input), "\r\n"), nil
}
