package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jse/activation"
	"jse/common"
	"jse/deps"
	"jse/engine"
	"jse/eval"
	"jse/loading"
	"jse/logging"
	"jse/mods"

	"github.com/ComedicChimera/olive"
	"github.com/pkg/errors"
)

// Execute runs the main `jse` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("jse", "jse loads type batches and resolves names against them", true)
	cli.AddSelectorArg("loglevel", "ll", "the engine log level", false, []string{"silent", "error", "warn", "verbose"})

	sortCmd := cli.AddSubcommand("sort", "print the initialization order of a batch", true)
	sortCmd.AddPrimaryArg("batch-path", "the path to the batch file", true)

	checkCmd := cli.AddSubcommand("check", "load a batch and report errors", true)
	checkCmd.AddPrimaryArg("batch-path", "the path to the batch file", true)

	resolveCmd := cli.AddSubcommand("resolve", "load a batch and resolve a name", true)
	resolveCmd.AddPrimaryArg("batch-path", "the path to the batch file", true)
	resolveCmd.AddStringArg("ident", "i", "the (possibly dotted) name to resolve", true)
	resolveCmd.AddStringArg("type", "t", "resolve inside a static method of this type", false)

	initCmd := cli.AddSubcommand("init", "initialize a module file", true)
	initCmd.AddPrimaryArg("module-name", "the name of the module", true)
	initCmd.AddFlag("deterministic", "d", "order the types of a level by name")

	cli.AddSubcommand("version", "print the jse version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	loglevel, _ := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "sort":
		execSortCommand(subResult, loglevel)
	case "check":
		execCheckCommand(subResult, loglevel)
	case "resolve":
		execResolveCommand(subResult, loglevel)
	case "init":
		execInitCommand(subResult)
	case "version":
		logging.PrintInfoMessage("JSE Version", common.JSEVersion)
	}
}

// execSortCommand prints every type of a batch with its level in the order it
// would be initialized
func execSortCommand(result *olive.ArgParseResult, loglevel string) {
	batchPath, cfg, ok := setup(result, loglevel)
	if !ok {
		return
	}

	logging.DisplayHeader("sort")

	b, err := loading.ReadBatchFile(batchPath)
	if err != nil {
		logging.PrintErrorMessage("Batch Error", err)
		return
	}

	e, err := engine.New(cfg)
	if err != nil {
		logging.PrintErrorMessage("Engine Error", err)
		return
	}

	sorted, err := e.Loader().Sort(b)
	if err != nil {
		logging.PrintErrorMessage("Sort Error", err)
		return
	}

	nodes := make([]deps.Resolvable, len(sorted))
	for i, d := range sorted {
		nodes[i] = d
	}

	levels, err := deps.Levels(nodes)
	if err != nil {
		logging.PrintErrorMessage("Sort Error", err)
		return
	}

	for _, d := range sorted {
		kind := "type"
		if d.IsAttributeType() {
			kind = "attribute"
		}

		fmt.Printf("%3d  %-9s  %s\n", levels[d.Name], kind, d.Name)
	}
}

// execCheckCommand loads a batch file and reports all errors
func execCheckCommand(result *olive.ArgParseResult, loglevel string) {
	batchPath, cfg, ok := setup(result, loglevel)
	if !ok {
		os.Exit(1)
	}

	logging.DisplayHeader("check")

	_, err := loadBatchFile(batchPath, cfg)
	if code := finish(err); code != 0 {
		os.Exit(code)
	}
}

// execResolveCommand loads a batch file and resolves a name in either the
// global context or a static context of a type
func execResolveCommand(result *olive.ArgParseResult, loglevel string) {
	batchPath, cfg, ok := setup(result, loglevel)
	if !ok {
		os.Exit(1)
	}

	ident, _ := result.Arguments["ident"].(string)

	logging.DisplayHeader("resolve")

	e, err := loadBatchFile(batchPath, cfg)
	if err != nil {
		os.Exit(finish(err))
	}

	var ctx *activation.Context
	if typeName, ok := result.Arguments["type"].(string); ok && typeName != "" {
		ctx, err = e.StaticContext(typeName)
		if err != nil {
			logging.PrintErrorMessage("Context Error", err)
			os.Exit(finish(err))
		}
	} else {
		ctx = e.GlobalContext()
	}

	logging.BeginPhase("Resolving")
	v, err := eval.ResolvePath(ctx, ident)
	logging.EndPhase()

	if err != nil {
		eval.Report(ctx, err)
	} else {
		logging.PrintInfoMessage(ident, v.Deref().String())
	}

	if code := finish(err); code != 0 {
		os.Exit(code)
	}
}

// execInitCommand writes a new module file to the working directory
func execInitCommand(result *olive.ArgParseResult) {
	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	modName, _ := result.PrimaryArg()
	if err := mods.InitConfig(modName, workDir, result.HasFlag("deterministic")); err != nil {
		logging.PrintErrorMessage("Module Init Error", err)
	}
}

// -----------------------------------------------------------------------------

// setup extracts the batch path of a command, loads the configuration of the
// batch's directory and initializes the logger
func setup(result *olive.ArgParseResult, loglevel string) (string, *mods.Config, bool) {
	relPath, _ := result.PrimaryArg()

	batchPath, err := filepath.Abs(relPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return "", nil, false
	}

	cfg, err := loadConfig(filepath.Dir(batchPath))
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		return "", nil, false
	}

	if loglevel == "" {
		loglevel = cfg.LogLevel
	}

	logging.Initialize(cfg.RootPath, loglevel)
	return batchPath, cfg, true
}

// loadBatchFile creates an engine and loads a batch file into it.  Load
// errors are logged by the loader.
func loadBatchFile(batchPath string, cfg *mods.Config) (*engine.Engine, error) {
	e, err := engine.New(cfg)
	if err != nil {
		logging.PrintErrorMessage("Engine Error", err)
		return nil, err
	}

	logging.BeginPhase("Loading")
	_, err = e.LoadFile(batchPath)
	logging.EndPhase()

	return e, err
}

// finish displays the closing message of a command and returns its exit
// status: 1 if the command failed or any error was logged
func finish(err error) int {
	if !logging.Finish() || err != nil {
		return 1
	}

	return 0
}

// loadConfig loads the module file of a directory, falling back to the
// default configuration if there is none
func loadConfig(dir string) (*mods.Config, error) {
	cfg, err := mods.LoadConfig(dir)
	if err == nil {
		return cfg, nil
	}

	if os.IsNotExist(errors.Cause(err)) {
		name := strings.TrimSuffix(filepath.Base(dir), filepath.Ext(dir))
		return mods.DefaultConfig(name, dir), nil
	}

	return nil, err
}
