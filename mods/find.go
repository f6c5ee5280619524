package mods

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"jse/common"
)

// ResolveModulePath takes in a module name and attempts to find the batch
// file declaring it.  The root directory is searched first followed by the
// configured module paths.
func (c *Config) ResolveModulePath(name string) (string, bool) {
	if path, ok := searchPath(c.RootPath, name); ok {
		return path, true
	}

	for _, mp := range c.ModulePaths {
		if path, ok := searchPath(mp, name); ok {
			return path, true
		}
	}

	return "", false
}

// searchPath searches a directory for the batch file of a module
func searchPath(abspath, modName string) (string, bool) {
	if abspath == "" {
		return "", false
	}

	// the file named after the module is checked first
	potentialPath := filepath.Join(abspath, modName+common.BatchFileExtension)
	if finfo, err := os.Stat(potentialPath); err == nil && !finfo.IsDir() {
		return potentialPath, true
	}

	// otherwise a subdirectory named after the module may hold it
	potentialPath = filepath.Join(abspath, modName, modName+common.BatchFileExtension)
	if finfo, err := os.Stat(potentialPath); err == nil && !finfo.IsDir() {
		return potentialPath, true
	}

	return "", false
}

// ListBatchFiles lists the batch files directly inside a directory
func ListBatchFiles(dir string) ([]string, error) {
	finfos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, finfo := range finfos {
		if !finfo.IsDir() && strings.HasSuffix(finfo.Name(), common.BatchFileExtension) {
			paths = append(paths, filepath.Join(dir, finfo.Name()))
		}
	}

	return paths, nil
}
