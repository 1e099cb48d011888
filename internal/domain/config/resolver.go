package config

import (
	"errors"
	"path/filepath"
)

// ResolveOptions select which layers participate in a resolution.
type ResolveOptions struct {
	// ConfigDir overrides the default config directory.
	ConfigDir string
	// Project names the project explicitly; empty means auto-detect by
	// matching ProjectRoot against recorded project paths.
	Project string
	// Context names the context; empty means "default".
	Context string
	// ProjectRoot is the working tree used for auto-detection.
	ProjectRoot string
	// AllowMissingProject lets an explicitly named but absent project pass,
	// for commands that create it.
	AllowMissingProject bool
}

// Resolver loads the three layers and merges them on demand.
type Resolver struct {
	configDir     string
	globalConfig  Config
	projectConfig *ProjectConfig
	contextConfig *ContextConfig
	projectName   string
	contextName   string
}

// LoadResolver reads all applicable layers for the given options.
func LoadResolver(opts ResolveOptions) (*Resolver, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = DefaultDir()
	}

	global, err := LoadFromPath(filepath.Join(configDir, "config.toml"))
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		configDir:    configDir,
		globalConfig: global,
		contextName:  opts.Context,
	}
	if r.contextName == "" {
		r.contextName = "default"
	}

	if opts.Project != "" {
		r.projectName = opts.Project
		project, err := LoadProject(configDir, opts.Project)
		switch {
		case err == nil:
			r.projectConfig = &project
		case opts.AllowMissingProject && isProjectNotFound(err):
			// Left unloaded; the command will create it.
		default:
			return nil, err
		}
	} else if opts.ProjectRoot != "" {
		name, err := FindProjectByPath(configDir, opts.ProjectRoot)
		if err != nil {
			return nil, err
		}
		if name != "" {
			project, err := LoadProject(configDir, name)
			if err != nil {
				return nil, err
			}
			r.projectName = name
			r.projectConfig = &project
		}
	}

	if r.projectConfig != nil {
		ctx, err := LoadContext(ProjectDir(configDir, r.projectName), r.contextName)
		switch {
		case err == nil:
			r.contextConfig = &ctx
		case opts.Context == "" && isContextNotFound(err):
			// The default context not existing yet is fine.
		default:
			return nil, err
		}
	}

	return r, nil
}

// Resolve returns the merged configuration, context over project over
// global.
func (r *Resolver) Resolve() Config {
	result := r.globalConfig
	if r.projectConfig != nil {
		merge(&result, r.projectConfig.Config)
	}
	if r.contextConfig != nil {
		merge(&result, r.contextConfig.Config)
	}
	return result
}

// ConfigDir returns the resolved config directory.
func (r *Resolver) ConfigDir() string {
	return r.configDir
}

// ProjectName returns the resolved project name, or "" when none matched.
func (r *Resolver) ProjectName() string {
	return r.projectName
}

// ContextName returns the context name in effect.
func (r *Resolver) ContextName() string {
	return r.contextName
}

// ContextStorageDir returns the context-owned repository directory, or ""
// when no context layer is loaded.
func (r *Resolver) ContextStorageDir() string {
	if r.contextConfig == nil {
		return ""
	}
	return r.contextConfig.StoragePath(ProjectDir(r.configDir, r.projectName), r.contextName)
}

// ContextIgnorePath returns the context-scoped ignore file, or "" when no
// context layer is loaded.
func (r *Resolver) ContextIgnorePath() string {
	if r.contextConfig == nil {
		return ""
	}
	return r.contextConfig.IgnorePath(ProjectDir(r.configDir, r.projectName), r.contextName)
}

func isProjectNotFound(err error) bool {
	var notFound *ProjectNotFoundError
	return errors.As(err, &notFound)
}

func isContextNotFound(err error) bool {
	var notFound *ContextNotFoundError
	return errors.As(err, &notFound)
}
