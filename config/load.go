package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"svcore/common"
	"svcore/logging"
	"svcore/syntax"

	"github.com/pelletier/go-toml"
)

// tomlProject represents the project file as it is encoded in TOML.
type tomlProject struct {
	Project *tomlProjectBody `toml:"project"`
}

type tomlProjectBody struct {
	Name            string    `toml:"name"`
	Sources         []string  `toml:"sources"`
	ErrorLimit      int       `toml:"error-limit,omitempty"`
	TimeUnit        *tomlTime `toml:"timeunit,omitempty"`
	TimePrecision   *tomlTime `toml:"timeprecision,omitempty"`
	LanguageVariant string    `toml:"language-variant,omitempty"`
	CoreVersion     string    `toml:"core-version"`
}

// tomlTime encodes one side of a timeunit/timeprecision pair: a decimal
// digit (1/10/100) and a power-of-ten exponent (s=0, ms=-3, us=-6, ns=-9,
// ps=-12, fs=-15), matching SystemVerilog's `\`timescale` grammar.
type tomlTime struct {
	Magnitude int `toml:"magnitude"`
	Exponent  int `toml:"exponent"`
}

// LoadProject loads and validates the project file at path (the directory
// containing sv.toml). Grounded on chai's mods.LoadModule.
func LoadProject(path string) (*Project, error) {
	f, err := os.Open(filepath.Join(path, common.ProjectFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tp := &tomlProject{}
	if err := toml.Unmarshal(buff, tp); err != nil {
		return nil, err
	}

	if tp.Project == nil {
		return nil, errors.New("sv.toml is missing a [project] section")
	}

	proj := &Project{ProjectRoot: path}
	if err := validateProject(proj, tp.Project); err != nil {
		return nil, err
	}

	proj.Name = tp.Project.Name
	proj.Sources = tp.Project.Sources
	proj.ErrorLimit = tp.Project.ErrorLimit
	proj.LanguageVariant = tp.Project.LanguageVariant
	if proj.LanguageVariant == "" {
		proj.LanguageVariant = "sv2017"
	}

	proj.DefaultTimeScale = defaultTimeScale()
	if tp.Project.TimeUnit != nil {
		proj.DefaultTimeScale.UnitMagnitude = tp.Project.TimeUnit.Magnitude
		proj.DefaultTimeScale.UnitExponent = tp.Project.TimeUnit.Exponent
	}
	if tp.Project.TimePrecision != nil {
		proj.DefaultTimeScale.PrecisionMagnitude = tp.Project.TimePrecision.Magnitude
		proj.DefaultTimeScale.PrecisionExponent = tp.Project.TimePrecision.Exponent
	}

	return proj, nil
}

// defaultTimeScale is 1ns/1ns, matching types.Registry's own default and
// slang's DEFAULT_TIME_SCALE.
func defaultTimeScale() syntax.TimeScale {
	return syntax.TimeScale{UnitMagnitude: 1, UnitExponent: -9, PrecisionMagnitude: 1, PrecisionExponent: -9}
}

// validateProject checks that the decoded project body is well formed.
func validateProject(proj *Project, body *tomlProjectBody) error {
	if body.Name == "" {
		return fmt.Errorf("missing project name for project at %s", proj.ProjectRoot)
	}

	if !IsValidIdentifier(body.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if len(body.Sources) == 0 {
		return fmt.Errorf("project %s must list at least one source glob", body.Name)
	}

	if body.CoreVersion != "" && body.CoreVersion != common.CoreVersion {
		logging.LogConfigError(
			"project",
			fmt.Sprintf("project %s targets core version v%s, running v%s", body.Name, body.CoreVersion, common.CoreVersion),
		)
	}

	return nil
}
