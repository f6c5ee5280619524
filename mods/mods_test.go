package mods

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"jse/common"
	"jse/deps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, InitConfig("demo", dir, true))
	assert.Error(t, InitConfig("demo", dir, true), "module file already exists")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, dir, cfg.RootPath)
	assert.Equal(t, "verbose", cfg.LogLevel)
	assert.Equal(t, []string{"System"}, cfg.Namespaces)
	assert.True(t, cfg.DeterministicOrder)
	assert.True(t, cfg.CacheStaticMembers)
}

func TestInitConfigInvalidName(t *testing.T) {
	assert.Error(t, InitConfig("1demo", t.TempDir(), false))
}

func TestDecodeConfig(t *testing.T) {
	var useCases = []struct {
		description string
		content     string
		valid       bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			description: "full",
			content: `
[module]
name = "geo"
module-paths = ["lib", "/opt/jse"]
namespaces = ["System", "Geo.Shapes"]
jse-version = "` + common.JSEVersion + `"

[engine]
log-level = "warn"
deterministic-order = true
cache-static-members = false
`,
			valid: true,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{filepath.Join("/root", "lib"), "/opt/jse"}, cfg.ModulePaths)
				assert.Equal(t, []string{"System", "Geo.Shapes"}, cfg.Namespaces)
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.True(t, cfg.DeterministicOrder)
				assert.False(t, cfg.CacheStaticMembers)
			},
		},
		{
			description: "missing name",
			content:     "[module]\njse-version = \"0.1.0\"\n",
		},
		{
			description: "bad namespace",
			content:     "[module]\nname = \"geo\"\nnamespaces = [\"Geo..Shapes\"]\n",
		},
		{
			description: "bad log level",
			content:     "[module]\nname = \"geo\"\n[engine]\nlog-level = \"loud\"\n",
		},
		{
			description: "malformed",
			content:     "[module\nname = ",
		},
	}

	for _, useCase := range useCases {
		cfg, err := decodeConfig("/root", []byte(useCase.content))
		if !useCase.valid {
			assert.Error(t, err, useCase.description)
			continue
		}

		require.NoError(t, err, useCase.description)
		useCase.check(t, cfg)
	}
}

func TestResolveModulePath(t *testing.T) {
	root := t.TempDir()
	lib := t.TempDir()

	require.NoError(t, ioutil.WriteFile(filepath.Join(root, "App.yaml"), []byte("module: App\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(lib, "Geo"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(lib, "Geo", "Geo.yaml"), []byte("module: Geo\n"), 0644))

	cfg := DefaultConfig("App", root)
	cfg.ModulePaths = []string{lib}

	path, ok := cfg.ResolveModulePath("App")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "App.yaml"), path)

	path, ok = cfg.ResolveModulePath("Geo")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(lib, "Geo", "Geo.yaml"), path)

	_, ok = cfg.ResolveModulePath("Missing")
	assert.False(t, ok)

	files, err := ListBatchFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "App.yaml")}, files)
}

func TestManagerScriptCycle(t *testing.T) {
	mm := NewManager(DefaultConfig("App", ""))

	require.NoError(t, mm.EnterScript("a.yaml"))
	require.NoError(t, mm.EnterScript("b.yaml"))

	err := mm.EnterScript("a.yaml")
	var cycleErr *deps.CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, deps.CycleScripts, cycleErr.Kind)
	assert.Equal(t, []string{"a.yaml", "b.yaml", "a.yaml"}, cycleErr.Path)

	mm.LeaveScript("b.yaml")
	mm.LeaveScript("a.yaml")
	assert.NoError(t, mm.EnterScript("a.yaml"))
}

func TestManagerModules(t *testing.T) {
	mm := NewManager(DefaultConfig("App", ""))
	mm.Register("Geo", "geo.yaml", "Geo.Point")
	mm.Register("Geo", "geo.yaml", "Geo.Line")
	mm.Register("App", "")

	mi, ok := mm.Module("Geo")
	require.True(t, ok)
	assert.Equal(t, []string{"Geo.Point", "Geo.Line"}, mi.Types)
	assert.Equal(t, []string{"App", "Geo"}, mm.ModuleNames())
}
