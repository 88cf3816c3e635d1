/*
File    : trill/cmd/trillc/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for trillc, Trill's front-end driver. It
provides two modes of operation:
1. File mode: type-check the given source files and report diagnostics
2. REPL mode (default, no file arguments): interactively type-check one
   declaration or expression at a time

trillc only runs the lexer/parser/sema pipeline (spec's Non-goals exclude
codegen, linking, and execution) — it exists to exercise the checker, not
to run Trill programs.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/parser"
	"github.com/akashmaji946/trill/printer"
	"github.com/akashmaji946/trill/sema"
	"github.com/akashmaji946/trill/source"
)

// VERSION is trillc's version string.
var VERSION = "v0.1.0"

// AUTHOR contains the contact information of trillc's author.
var AUTHOR = "akashmaji(@iisc.ac.in)"

// PROMPT is the prompt shown in REPL mode.
var PROMPT = "trill> "

// BANNER is the ASCII logo shown when starting the REPL.
var BANNER = `
   __       _ _ _
  / /_ _ __(_) | | ___
 / __| '__| | | |/ __|
 \__ \ |  | | | | (__
 |___/_|  |_|_|_|\___|
`

var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	showAST := flag.Bool("ast", false, "print the re-printed source for each checked file before its diagnostics")
	dumpConfig := flag.Bool("dump-config", false, "print the active builtin-width configuration as YAML and exit")
	configPath := flag.String("config", "", "path to a YAML file of builtin-width overrides, consumed by sema.NewContextWithConfig")
	showVersionFlag := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	cfg := loadConfig(*configPath)

	if *dumpConfig {
		dumpConfigYAML(cfg)
		return
	}
	if *showVersionFlag {
		showVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		runREPL(cfg)
		return
	}
	exitCode := 0
	for _, path := range args {
		if !checkFile(path, cfg, *showAST) {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// loadConfig reads a YAML builtin-width override file, falling back to
// sema.DefaultBuiltinConfig when path is empty (the common case —
// trillc's Non-goal-adjacent config surface is opt-in, see SPEC_FULL.md
// §11/§12).
func loadConfig(path string) sema.BuiltinConfig {
	cfg := sema.DefaultBuiltinConfig()
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] invalid YAML in %q: %v\n", path, err)
		os.Exit(1)
	}
	return cfg
}

func dumpConfigYAML(cfg sema.BuiltinConfig) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

func showVersion() {
	cyanColor.Println("trillc - the Trill front-end driver")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// checkFile reads, parses, and type-checks one source file, printing its
// diagnostics with severity coloring. It reports whether the file came
// out clean (no Error-severity diagnostics).
func checkFile(path string, cfg sema.BuiltinConfig, showAST bool) bool {
	mgr := source.NewManager()
	f, err := mgr.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		return false
	}

	diags := diag.NewEngine()
	file := parser.ParseFile(f, diags)
	if diags.HasErrors() {
		printDiagnostics(os.Stderr, diags)
		return false
	}

	if showAST {
		fmt.Println(printer.Print(file))
		fmt.Println(LINE)
	}

	ctx := sema.NewContextWithConfig(diags, cfg)
	result := sema.NewAnalyzer(ctx).Check([]*ast.File{file})
	printDiagnostics(os.Stderr, result.Diags)
	return result.OK
}

// printDiagnostics renders every collected diagnostic in emission order,
// coloring by severity: red for errors, yellow for warnings, cyan for
// notes — the same three-color convention repl/repl.go uses for its own
// output.
func printDiagnostics(w *os.File, diags *diag.Engine) {
	for _, d := range diags.All() {
		switch d.Severity {
		case diag.Error:
			redColor.Fprintln(w, d.String())
		case diag.Warning:
			yellowColor.Fprintln(w, d.String())
		default:
			cyanColor.Fprintln(w, d.String())
		}
		for _, note := range d.Notes {
			cyanColor.Fprintf(w, "  note: %s\n", note.Message)
		}
	}
}
