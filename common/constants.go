package common

// Constants describing the project and its on-disk conventions.
const (
	SrcFileExtension = ".sv"
	ProjectFileName  = "sv.toml"
	CoreVersion      = "0.1.0"
)

// InstallPath is the path to the core's installation directory. The CLI
// populates it at startup from SVCORE_PATH; nothing in the core reads it.
var InstallPath = ""
