package config

import "svcore/syntax"

// Project is the decoded, validated form of sv.toml. Grounded on chai's own
// ChaiModule/BuildProfile pair (mods/module.go), collapsed into one struct
// since this domain has no separate build-profile concept (there is no
// codegen backend to target an OS/arch/output-format triple for).
type Project struct {
	// Name is the project name, used only for display (banners, `sv init`
	// scaffolding); it plays no role in symbol/package resolution.
	Name string

	// ProjectRoot is the directory containing sv.toml.
	ProjectRoot string

	// Sources lists the glob patterns (relative to ProjectRoot) the CLI
	// expands into source files handed to the parser collaborator.
	Sources []string

	// ErrorLimit caps the number of distinct error diagnostics elaboration
	// records before the forcing visitor stops early. Zero means
	// compilation.Compilation's own default (no limit).
	ErrorLimit int

	// DefaultTimeScale is the `timeunit`/`timeprecision` pair modules
	// without their own timescale directive inherit.
	DefaultTimeScale syntax.TimeScale

	// LanguageVariant is the `language-variant` setting, "sv2017" when
	// unset. It is not passed to compilation: registerBuiltins always
	// wires in the same registrar set whatever its value.
	LanguageVariant string
}

// IsValidIdentifier returns whether idstr would be a valid module, package,
// or project name. Kept verbatim from chai's mods.IsValidIdentifier.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
