package mods

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"jse/common"
	"jse/logging"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
	Engine *tomlEngine `toml:"engine"`
}

// tomlModule represents the module section of the module file
type tomlModule struct {
	Name        string   `toml:"name"`
	ModulePaths []string `toml:"module-paths,omitempty"`
	Namespaces  []string `toml:"namespaces,omitempty"`
	Version     string   `toml:"jse-version"`
}

// tomlEngine represents the engine section of the module file
type tomlEngine struct {
	LogLevel           string `toml:"log-level,omitempty"`
	DeterministicOrder bool   `toml:"deterministic-order"`
	CacheStaticMembers bool   `toml:"cache-static-members"`
}

// LoadConfig loads and validates the module file in the given directory
func LoadConfig(path string) (*Config, error) {
	// open file
	f, err := os.Open(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return decodeConfig(path, buff)
}

// decodeConfig decodes and validates the contents of a module file
func decodeConfig(path string, buff []byte) (*Config, error) {
	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, errors.Wrapf(err, "malformed module file in %s", path)
	}

	if err := validateModule(path, tmf); err != nil {
		return nil, err
	}

	cfg := DefaultConfig(tmf.Module.Name, path)
	cfg.ModulePaths = make([]string, len(tmf.Module.ModulePaths))
	for i, mp := range tmf.Module.ModulePaths {
		if filepath.IsAbs(mp) {
			cfg.ModulePaths[i] = mp
		} else {
			cfg.ModulePaths[i] = filepath.Join(path, mp)
		}
	}

	if len(tmf.Module.Namespaces) > 0 {
		cfg.Namespaces = tmf.Module.Namespaces
	}

	if tmf.Engine != nil {
		if tmf.Engine.LogLevel != "" {
			cfg.LogLevel = tmf.Engine.LogLevel
		}

		cfg.DeterministicOrder = tmf.Engine.DeterministicOrder
		cfg.CacheStaticMembers = tmf.Engine.CacheStaticMembers
	}

	return cfg, nil
}

// validateModule checks that the module file contents are valid
func validateModule(path string, tmf *tomlModuleFile) error {
	if tmf.Module == nil || tmf.Module.Name == "" {
		return errors.Errorf("missing module name for module at %s", path)
	}

	if !common.IsValidIdentifier(tmf.Module.Name) {
		return errors.New("module name must be a valid identifier")
	}

	for _, ns := range tmf.Module.Namespaces {
		if !common.IsValidQualifiedName(ns) {
			return errors.Errorf("`%s` is not a valid namespace", ns)
		}
	}

	if tmf.Engine != nil && tmf.Engine.LogLevel != "" {
		switch tmf.Engine.LogLevel {
		case "silent", "error", "warn", "warning", "verbose":
		default:
			return errors.Errorf("unknown log level `%s`", tmf.Engine.LogLevel)
		}
	}

	if tmf.Module.Version != common.JSEVersion {
		logging.LogConfigWarning(
			"Module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current jse version (v%s)", tmf.Module.Name, tmf.Module.Version, common.JSEVersion),
		)
	}

	return nil
}
