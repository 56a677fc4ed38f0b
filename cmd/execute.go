// Package cmd wires the compilation/config/logging packages into a CLI,
// grounded on chai's own cmd/execute.go: same olive-driven subcommand tree
// shape (top-level log-level selector, one subcommand per verb), retargeted
// at this domain's `check`/`init`/`version` verbs instead of chai's
// `build`/`mod`/`version`.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"svcore/common"
	"svcore/compilation"
	"svcore/config"
	"svcore/logging"
	"svcore/walk"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main CLI application.
func Execute() {
	initInstallPath()

	cli := olive.NewCLI("sv", "sv elaborates SystemVerilog projects and reports diagnostics", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the elaborator log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "elaborate a project and report diagnostics", true)
	checkCmd.AddPrimaryArg("project-path", "the path to the project directory (default: current directory)", false)

	initCmd := cli.AddSubcommand("init", "scaffold a new project", true)
	initCmd.AddPrimaryArg("project-name", "the name of the new project", true)

	cli.AddSubcommand("version", "print the core version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult, result.Arguments["loglevel"].(string))
	case "init":
		execInitCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Core Version", common.CoreVersion)
	}
}

// execCheckCommand loads a project's configuration and runs elaboration
// over whatever syntax trees the (external) parser collaborator hands it,
// then reports diagnostics. Grounded on chai's execBuildCommand.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) {
	projectRelPath, hasPath := result.PrimaryArg()
	if !hasPath || projectRelPath == "" {
		projectRelPath = "."
	}

	startDir, err := filepath.Abs(projectRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	projectRoot, err := config.FindProjectRoot(startDir)
	if err != nil {
		logging.PrintErrorMessage("Project Error", err)
		return
	}

	proj, err := config.LoadProject(projectRoot)
	if err != nil {
		logging.PrintErrorMessage("Project Load Error", err)
		return
	}

	logging.Initialize(loglevel)
	logging.LogCompileHeader(proj.Name)

	sourceFiles, err := expandSources(proj)
	if err != nil {
		logging.PrintErrorMessage("Source Error", err)
		return
	}
	if len(sourceFiles) == 0 {
		logging.PrintWarningMessage("Source Warning", fmt.Sprintf("no source files matched %v in %s", proj.Sources, projectRoot))
	}

	// This module implements semantic elaboration over already-parsed
	// syntax trees; lexing/preprocessing/parsing source text into
	// *syntax.Tree values is an external collaborator (see
	// compilation.Compilation.AddSyntaxTree and source.Manager) this CLI
	// does not itself provide. `check` runs the elaboration pipeline with
	// whatever trees it is given (none, absent a wired-in parser), which
	// still exercises top-module selection, the diagnostic-forcing visitor,
	// and diagnostic rendering end to end.
	logging.LogBeginPhase("Elaborating")

	comp := compilation.New(compilation.Options{
		ErrorLimit:       proj.ErrorLimit,
		DefaultTimeScale: proj.DefaultTimeScale,
	}, nil)

	root := comp.GetRoot()
	walk.NewVisitor(comp, comp.ErrorLimit()).Visit(root)

	diags := comp.GetAllDiagnostics()
	success := comp.Diagnostics().NumErrors() == 0
	logging.LogEndPhase(success)

	for _, d := range diags {
		logging.LogDiagnostic(nil, d)
	}

	logging.LogCompilationFinished()
}

// expandSources resolves a project's source globs (relative to its root)
// into a sorted, deduplicated file list.
func expandSources(proj *config.Project) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range proj.Sources {
		matches, err := filepath.Glob(filepath.Join(proj.ProjectRoot, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern %q: %s", pattern, err.Error())
		}

		for _, m := range matches {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// execInitCommand scaffolds a new project in the current directory.
func execInitCommand(result *olive.ArgParseResult) {
	name, _ := result.PrimaryArg()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	if err := config.InitProject(name, workDir); err != nil {
		logging.PrintErrorMessage("Project Init Error", err)
		return
	}

	logging.PrintInfoMessage("Project Created", name)
}

// initInstallPath populates common.InstallPath from SVCORE_PATH if set. It
// is optional: registerBuiltins wires in every built-in from code, so
// nothing currently requires a disk-based installation directory.
func initInstallPath() {
	if p, ok := os.LookupEnv("SVCORE_PATH"); ok {
		if finfo, err := os.Stat(p); err == nil && finfo.IsDir() {
			common.InstallPath = p
		}
	}
}
