package config

import (
	"errors"
	"os"
	"path/filepath"

	"svcore/common"
)

// FindProjectRoot walks upward from startDir looking for a directory
// containing sv.toml, the way chai's mods.checkPath probes a candidate
// directory for a module file — generalized here to search ancestors
// rather than a fixed set of candidate directories, since a SystemVerilog
// project has no import-path search list to walk instead.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if hasProjectFile(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("no sv.toml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// hasProjectFile reports whether dir directly contains a project file.
func hasProjectFile(dir string) bool {
	finfo, err := os.Stat(filepath.Join(dir, common.ProjectFileName))
	return err == nil && !finfo.IsDir()
}
