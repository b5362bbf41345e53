// Package config handles loading ordino.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ordino/ordino/internal/paths"
)

// Config represents the ordino.toml configuration file.
type Config struct {
	Store Store `toml:"store"`
	Task  Task  `toml:"task"`
}

// Store contains storage-related configuration.
type Store struct {
	// Dir is the directory holding tasks.jsonl and dependencies.jsonl.
	// Relative paths are resolved against the project root.
	Dir string `toml:"dir"`
}

// Task contains defaults applied to newly created tasks.
type Task struct {
	// DefaultPriority is the priority assigned when none is given (1-5).
	DefaultPriority int `toml:"default-priority"`

	// DefaultHours is the effort estimate assigned when none is given.
	DefaultHours int `toml:"default-hours"`
}

// DefaultStoreDir is used when no configuration specifies a store directory.
const DefaultStoreDir = ".ordino"

// Load loads configuration from the project root and the global config file.
// Project values take precedence over global ones. Returns defaults if no
// config files exist.
func Load(projectPath string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectPath, "ordino.toml"))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

func globalConfigPath() (string, error) {
	return paths.GlobalConfigPath()
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	merged := Config{}

	merged.Store.Dir = mergeString(projectMeta.IsDefined("store", "dir"), projectCfg.Store.Dir, globalCfg.Store.Dir)
	merged.Task.DefaultPriority = mergeInt(projectMeta.IsDefined("task", "default-priority"), projectCfg.Task.DefaultPriority, globalMeta.IsDefined("task", "default-priority"), globalCfg.Task.DefaultPriority)
	merged.Task.DefaultHours = mergeInt(projectMeta.IsDefined("task", "default-hours"), projectCfg.Task.DefaultHours, globalMeta.IsDefined("task", "default-hours"), globalCfg.Task.DefaultHours)

	if merged.Store.Dir == "" {
		merged.Store.Dir = DefaultStoreDir
	}
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	if projectDefined {
		return projectValue
	}
	return globalValue
}

func mergeInt(projectDefined bool, projectValue int, globalDefined bool, globalValue int) int {
	if projectDefined {
		return projectValue
	}
	if globalDefined {
		return globalValue
	}
	return 0
}
