package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ContextConfig is the highest-priority layer: a named profile within a
// project that owns its own repository and ignore file.
type ContextConfig struct {
	CWD        string `toml:"cwd,omitempty"`
	ContextDir string `toml:"context_dir,omitempty"`
	Config            // layer overrides, inlined
}

// ContextDirPath returns the directory for a named context, honoring a
// custom context_dir when configured.
func (c ContextConfig) ContextDirPath(projectDir, name string) string {
	if c.ContextDir != "" {
		return c.ContextDir
	}
	return filepath.Join(projectDir, "contexts", name)
}

// StoragePath returns the repository directory owned by the context.
func (c ContextConfig) StoragePath(projectDir, name string) string {
	return filepath.Join(c.ContextDirPath(projectDir, name), "storage")
}

// IgnorePath returns the context-scoped ignore file.
func (c ContextConfig) IgnorePath(projectDir, name string) string {
	return filepath.Join(c.ContextDirPath(projectDir, name), "ignore")
}

// LoadContext reads the config for a named context within a project.
func LoadContext(projectDir, name string) (ContextConfig, error) {
	if err := ValidateName(name); err != nil {
		return ContextConfig{}, err
	}

	path := filepath.Join(projectDir, "contexts", name, "config.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ContextConfig{}, &ContextNotFoundError{Name: name}
	}
	if err != nil {
		return ContextConfig{}, fmt.Errorf("read context config %s: %w", path, err)
	}

	cfg := ContextConfig{Config: Default()}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ContextConfig{}, fmt.Errorf("parse context config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a new context config and creates the context-owned storage
// layout. Fails if the context already exists.
func (c ContextConfig) Save(projectDir, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := c.ContextDirPath(projectDir, name)
	configPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return &ContextAlreadyExistsError{Name: name}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode context config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return err
	}

	storageDir := filepath.Join(dir, "storage")
	for _, sub := range []string{storageDir, filepath.Join(storageDir, "objects"), filepath.Join(storageDir, "snapshots")} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ListContexts returns the context names of a project.
func ListContexts(projectDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(projectDir, "contexts"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// DeleteContext removes a context directory, including its storage.
func DeleteContext(projectDir, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := filepath.Join(projectDir, "contexts", name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &ContextNotFoundError{Name: name}
	}
	return os.RemoveAll(dir)
}
