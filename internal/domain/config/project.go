package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectConfig is the per-project layer. Path records the working tree the
// project belongs to, used for auto-detection from the current directory.
type ProjectConfig struct {
	Path   string `toml:"path"`
	Config        // layer overrides, inlined
}

// ProjectDir returns the directory holding a project's config and contexts.
func ProjectDir(configDir, name string) string {
	return filepath.Join(configDir, "projects", name)
}

// LoadProject reads the config for a named project.
func LoadProject(configDir, name string) (ProjectConfig, error) {
	if err := ValidateName(name); err != nil {
		return ProjectConfig{}, err
	}

	path := filepath.Join(ProjectDir(configDir, name), "config.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ProjectConfig{}, &ProjectNotFoundError{Name: name}
	}
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("read project config %s: %w", path, err)
	}

	cfg := ProjectConfig{Config: Default()}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("parse project config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a new project config. Fails if the project already exists.
func (p ProjectConfig) Save(configDir, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := ProjectDir(configDir, name)
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return &ProjectAlreadyExistsError{Name: name}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ListProjects returns the names of all projects in the config directory.
func ListProjects(configDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(configDir, "projects"))
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

// FindProjectByPath returns the name of the project whose recorded path
// matches projectPath, or "" when none does.
func FindProjectByPath(configDir, projectPath string) (string, error) {
	canonical := canonicalize(projectPath)

	names, err := ListProjects(configDir)
	if err != nil {
		return "", err
	}

	for _, name := range names {
		project, err := LoadProject(configDir, name)
		if err != nil {
			continue
		}
		if canonicalize(project.Path) == canonical {
			return name, nil
		}
	}
	return "", nil
}

func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
