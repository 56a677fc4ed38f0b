package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"svcore/common"

	"github.com/pelletier/go-toml"
)

// InitProject creates a new sv.toml at path for a project named name.
// Grounded on chai's mods.InitModule.
func InitProject(name, path string) error {
	projFilePath := filepath.Join(path, common.ProjectFileName)

	_, err := os.Stat(projFilePath)
	if err == nil {
		return errors.New("project file already exists")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("project file error: %s", err.Error())
	}

	if !IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	body := &tomlProjectBody{
		Name:        name,
		Sources:     []string{"*" + common.SrcFileExtension},
		CoreVersion: common.CoreVersion,
	}

	f, err := os.Create(projFilePath)
	if err != nil {
		return fmt.Errorf("error creating project file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlProject{Project: body}); err != nil {
		return fmt.Errorf("error encoding TOML: %s", err.Error())
	}

	return nil
}
