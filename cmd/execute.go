package cmd

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"quill/common"
	"quill/llc"
	"quill/lower"
	"quill/report"

	"github.com/ComedicChimera/olive"
)

// TODO: implement commands
// check      verify a module against the source dialects without lowering
// run        lower and execute a kernel against a simulator backend

// Execute runs the main `quill` application.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("quill", "quill is a tool for lowering quantum kernels to QIR", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the pipeline log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	demoCmd := cli.AddSubcommand("demo", "lower the built-in demonstration kernel", true)
	demoCmd.AddStringArg("profile", "p", "the path to the pipeline profile", false)

	cli.AddSubcommand("version", "print the quill version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportError("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "demo":
		execDemoCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.ReportInfo("Quill Version", common.QuillVersion)
	}
}

// execDemoCommand executes the demo subcommand and handles all errors.
func execDemoCommand(result *olive.ArgParseResult, loglevel string) {
	report.InitReporter(report.LogLevelFromString(loglevel))

	prof := defaultProfile()
	if profArgVal, ok := result.Arguments["profile"]; ok {
		loaded, ok := LoadProfile(profArgVal.(string))
		if !ok {
			return
		}

		prof = loaded
	} else if _, err := os.Stat(common.ProfileFileName); err == nil {
		loaded, ok := LoadProfile(common.ProfileFileName)
		if !ok {
			return
		}

		prof = loaded
	}

	report.ReportInfo("Pipeline", fmt.Sprintf("lowering with profile `%s` (qir: %s)", prof.Name, prof.QIRProfile))

	m := buildDemoKernel()
	if err := lower.ConvertToQIR(m); err != nil {
		report.ReportError("Lowering Error", err)
		for _, diag := range m.Diagnostics() {
			report.ReportError("Lowering Error", errors.New(diag))
		}

		return
	}

	llmod, err := llc.EmitModule(m)
	if err != nil {
		report.ReportError("Emission Error", err)
		return
	}

	if prof.OutputPath == "" {
		fmt.Print(llmod.String())
		return
	}

	if err := ioutil.WriteFile(prof.OutputPath, []byte(llmod.String()), 0644); err != nil {
		report.ReportError("Output Error", err)
		return
	}

	report.ReportInfo("Pipeline", "wrote "+prof.OutputPath)
}
