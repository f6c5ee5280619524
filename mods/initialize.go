package mods

import (
	"os"
	"path/filepath"

	"jse/common"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// InitConfig creates a new module file with the given name at the given path
func InitConfig(name, path string, deterministic bool) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return errors.Wrap(err, "module file error")
	}

	// validate module name
	if !common.IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	tmf := &tomlModuleFile{
		Module: &tomlModule{
			Name:       name,
			Namespaces: []string{"System"},
			Version:    common.JSEVersion,
		},
		Engine: &tomlEngine{
			LogLevel:           "verbose",
			DeterministicOrder: deterministic,
			CacheStaticMembers: true,
		},
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return errors.Wrap(err, "error creating module file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(tmf); err != nil {
		return errors.Wrap(err, "error encoding TOML")
	}

	return nil
}
