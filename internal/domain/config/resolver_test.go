package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayer(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProjectConfig(t *testing.T) {
	t.Parallel()

	t.Run("save and load round trip", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		project := ProjectConfig{Path: "/work/app", Config: Default()}
		project.Snapshot.MaxSnapshots = 50

		require.NoError(t, project.Save(configDir, "app"))

		loaded, err := LoadProject(configDir, "app")
		require.NoError(t, err)
		assert.Equal(t, "/work/app", loaded.Path)
		assert.Equal(t, 50, loaded.Snapshot.MaxSnapshots)
	})

	t.Run("save refuses duplicates", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		project := ProjectConfig{Path: "/work/app", Config: Default()}
		require.NoError(t, project.Save(configDir, "app"))

		err := project.Save(configDir, "app")
		var exists *ProjectAlreadyExistsError
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("load of unknown project", func(t *testing.T) {
		t.Parallel()

		_, err := LoadProject(t.TempDir(), "ghost")
		var notFound *ProjectNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("find by path", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		tree := t.TempDir()
		project := ProjectConfig{Path: tree, Config: Default()}
		require.NoError(t, project.Save(configDir, "mine"))

		name, err := FindProjectByPath(configDir, tree)
		require.NoError(t, err)
		assert.Equal(t, "mine", name)

		name, err = FindProjectByPath(configDir, t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, name)
	})
}

func TestContextConfig(t *testing.T) {
	t.Parallel()

	t.Run("save creates storage layout", func(t *testing.T) {
		t.Parallel()

		projectDir := t.TempDir()
		ctx := ContextConfig{Config: Default()}
		require.NoError(t, ctx.Save(projectDir, "feature"))

		storageDir := ctx.StoragePath(projectDir, "feature")
		for _, dir := range []string{storageDir, filepath.Join(storageDir, "objects"), filepath.Join(storageDir, "snapshots")} {
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("save refuses duplicates", func(t *testing.T) {
		t.Parallel()

		projectDir := t.TempDir()
		ctx := ContextConfig{Config: Default()}
		require.NoError(t, ctx.Save(projectDir, "feature"))

		err := ctx.Save(projectDir, "feature")
		var exists *ContextAlreadyExistsError
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("list and delete", func(t *testing.T) {
		t.Parallel()

		projectDir := t.TempDir()
		ctx := ContextConfig{Config: Default()}
		require.NoError(t, ctx.Save(projectDir, "one"))
		require.NoError(t, ctx.Save(projectDir, "two"))

		names, err := ListContexts(projectDir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"one", "two"}, names)

		require.NoError(t, DeleteContext(projectDir, "one"))
		names, err = ListContexts(projectDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"two"}, names)
	})
}

func TestResolver(t *testing.T) {
	t.Parallel()

	t.Run("global only", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		writeLayer(t, filepath.Join(configDir, "config.toml"), "[snapshot]\nmax_snapshots = 10\n")

		r, err := LoadResolver(ResolveOptions{ConfigDir: configDir})
		require.NoError(t, err)

		cfg := r.Resolve()
		assert.Equal(t, 10, cfg.Snapshot.MaxSnapshots)
		assert.Empty(t, r.ProjectName())
		assert.Equal(t, "default", r.ContextName())
	})

	t.Run("project layer overrides global", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		writeLayer(t, filepath.Join(configDir, "config.toml"), "[snapshot]\nmax_snapshots = 10\n")
		project := ProjectConfig{Path: "/work/app", Config: Default()}
		project.Snapshot.MaxSnapshots = 20
		require.NoError(t, project.Save(configDir, "app"))

		r, err := LoadResolver(ResolveOptions{ConfigDir: configDir, Project: "app"})
		require.NoError(t, err)
		assert.Equal(t, 20, r.Resolve().Snapshot.MaxSnapshots)
	})

	t.Run("context layer has highest priority", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		project := ProjectConfig{Path: "/work/app", Config: Default()}
		project.Snapshot.MaxSnapshots = 20
		require.NoError(t, project.Save(configDir, "app"))

		ctx := ContextConfig{Config: Default()}
		ctx.Snapshot.MaxSnapshots = 30
		require.NoError(t, ctx.Save(ProjectDir(configDir, "app"), "exp"))

		r, err := LoadResolver(ResolveOptions{ConfigDir: configDir, Project: "app", Context: "exp"})
		require.NoError(t, err)
		assert.Equal(t, 30, r.Resolve().Snapshot.MaxSnapshots)
		assert.NotEmpty(t, r.ContextStorageDir())
		assert.NotEmpty(t, r.ContextIgnorePath())
	})

	t.Run("auto detects project from tree path", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		tree := t.TempDir()
		project := ProjectConfig{Path: tree, Config: Default()}
		project.Snapshot.MaxAgeDays = 7
		require.NoError(t, project.Save(configDir, "detected"))

		r, err := LoadResolver(ResolveOptions{ConfigDir: configDir, ProjectRoot: tree})
		require.NoError(t, err)
		assert.Equal(t, "detected", r.ProjectName())
		assert.Equal(t, 7, r.Resolve().Snapshot.MaxAgeDays)
	})

	t.Run("missing default context is fine", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		project := ProjectConfig{Path: "/work/app", Config: Default()}
		require.NoError(t, project.Save(configDir, "app"))

		r, err := LoadResolver(ResolveOptions{ConfigDir: configDir, Project: "app"})
		require.NoError(t, err)
		assert.Empty(t, r.ContextStorageDir())
	})

	t.Run("missing explicit context is an error", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()
		project := ProjectConfig{Path: "/work/app", Config: Default()}
		require.NoError(t, project.Save(configDir, "app"))

		_, err := LoadResolver(ResolveOptions{ConfigDir: configDir, Project: "app", Context: "ghost"})
		var notFound *ContextNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("missing explicit project is an error unless allowed", func(t *testing.T) {
		t.Parallel()

		configDir := t.TempDir()

		_, err := LoadResolver(ResolveOptions{ConfigDir: configDir, Project: "ghost"})
		var notFound *ProjectNotFoundError
		require.ErrorAs(t, err, &notFound)

		r, err := LoadResolver(ResolveOptions{ConfigDir: configDir, Project: "ghost", AllowMissingProject: true})
		require.NoError(t, err)
		assert.Equal(t, "ghost", r.ProjectName())
	})
}
