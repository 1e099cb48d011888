package app

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/mote/internal/domain/config"
	"github.com/felixgeelhaar/mote/internal/domain/ignore"
)

// projectName returns the resolved project name, deriving one from the tree
// basename when create is set and nothing resolved.
func (s *Service) projectName(create bool) (string, error) {
	if name := s.resolver.ProjectName(); name != "" {
		return name, nil
	}
	if create {
		name := filepath.Base(s.root)
		if config.ValidateName(name) != nil {
			name = "migrated-project"
		}
		return name, nil
	}
	return "", errors.New("no project specified or detected, use --project or run from a project directory")
}

// NewContext creates a context (and the project, when missing) and seeds its
// ignore file. Returns the project name the context was created under.
func (s *Service) NewContext(name string) (string, error) {
	if err := config.ValidateName(name); err != nil {
		return "", err
	}

	projectName, err := s.projectName(true)
	if err != nil {
		return "", err
	}

	configDir := s.resolver.ConfigDir()
	if _, err := config.LoadProject(configDir, projectName); err != nil {
		var notFound *config.ProjectNotFoundError
		if !errors.As(err, &notFound) {
			return "", err
		}
		project := config.ProjectConfig{Path: s.root, Config: config.Default()}
		if err := project.Save(configDir, projectName); err != nil {
			return "", err
		}
	}

	projectDir := config.ProjectDir(configDir, projectName)
	ctx := config.ContextConfig{CWD: s.root, Config: config.Default()}
	if err := ctx.Save(projectDir, name); err != nil {
		return "", err
	}

	if err := ignore.CreateFile(ctx.IgnorePath(projectDir, name)); err != nil {
		return "", err
	}

	return projectName, nil
}

// Contexts lists the context names of the resolved project.
func (s *Service) Contexts() (string, []string, error) {
	projectName, err := s.projectName(false)
	if err != nil {
		return "", nil, err
	}

	names, err := config.ListContexts(config.ProjectDir(s.resolver.ConfigDir(), projectName))
	return projectName, names, err
}

// RemoveContext deletes a context and its storage. The default context
// cannot be deleted.
func (s *Service) RemoveContext(name string) error {
	if name == "default" {
		return errors.New("cannot delete default context")
	}

	projectName, err := s.projectName(false)
	if err != nil {
		return err
	}

	return config.DeleteContext(config.ProjectDir(s.resolver.ConfigDir(), projectName), name)
}

// MigrateResult reports a legacy-repository migration.
type MigrateResult struct {
	ProjectName string
	Source      string
	Destination string
	DryRun      bool
}

// Migrate copies a legacy in-tree .mote repository (and .moteignore) into the
// config-dir structure under the default context of a project named after
// the tree. The in-tree originals are left in place.
func (s *Service) Migrate(dryRun bool) (*MigrateResult, error) {
	oldRepo := filepath.Join(s.root, ".mote")
	if _, err := os.Stat(oldRepo); os.IsNotExist(err) {
		return nil, nil
	}

	projectName, err := s.projectName(true)
	if err != nil {
		return nil, err
	}

	configDir := s.resolver.ConfigDir()
	projectDir := config.ProjectDir(configDir, projectName)
	contextDir := filepath.Join(projectDir, "contexts", "default")
	storageDir := filepath.Join(contextDir, "storage")

	result := &MigrateResult{
		ProjectName: projectName,
		Source:      oldRepo,
		Destination: storageDir,
		DryRun:      dryRun,
	}
	if dryRun {
		return result, nil
	}

	project := config.ProjectConfig{Path: s.root, Config: config.Default()}
	if err := project.Save(configDir, projectName); err != nil {
		var exists *config.ProjectAlreadyExistsError
		if !errors.As(err, &exists) {
			return nil, err
		}
	}

	ctx := config.ContextConfig{CWD: s.root, Config: config.Default()}
	if err := ctx.Save(projectDir, "default"); err != nil {
		var exists *config.ContextAlreadyExistsError
		if !errors.As(err, &exists) {
			return nil, err
		}
	}

	if err := copyDir(oldRepo, storageDir); err != nil {
		return nil, err
	}

	oldIgnore := filepath.Join(s.root, config.DefaultIgnoreFile)
	newIgnore := filepath.Join(contextDir, "ignore")
	if _, err := os.Stat(oldIgnore); err == nil {
		if err := copyFile(oldIgnore, newIgnore); err != nil {
			return nil, err
		}
	} else if err := ignore.CreateFile(newIgnore); err != nil {
		return nil, err
	}

	return result, nil
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
