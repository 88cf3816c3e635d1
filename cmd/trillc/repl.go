/*
File    : trill/cmd/trillc/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

The REPL re-checks the whole accumulated session buffer on every line
(same simplicity the teacher's REPL has with a fresh parser.NewParser(line)
per input — see repl/repl.go's executeWithRecovery) rather than mutating
a live sema.Context in place; Context has no "undo a failed declaration"
operation, so starting clean each time is the only way a bad line can't
corrupt the session.
*/
package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/parser"
	"github.com/akashmaji946/trill/sema"
	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/types"
)

var (
	blueColor  = color.New(color.FgBlue)
	greenColor = color.New(color.FgGreen)
)

// declKeywords are the tokens that start a top-level declaration,
// distinguishing a line the REPL should persist into the session buffer
// from a bare expression it should only evaluate once.
var declKeywords = map[string]bool{
	"func": true, "type": true, "protocol": true, "extension": true,
	"var": true, "let": true,
	"foreign": true, "static": true, "mutating": true,
	"indirect": true, "noreturn": true, "implicit": true,
}

const replExprFunc = "__replExpr"

// session holds the growing buffer of declarations the user has entered
// so far, re-checked in full against a fresh Context on every line.
type session struct {
	buf string
	cfg sema.BuiltinConfig
}

func newSession(cfg sema.BuiltinConfig) *session { return &session{cfg: cfg} }

func runREPL(cfg sema.BuiltinConfig) {
	printBanner()

	rl, err := readline.New(PROMPT)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	sess := newSession(cfg)
	for {
		line, err := rl.Readline()
		if err != nil {
			blueColor.Println("Good Bye!")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" || line == "/exit" {
			blueColor.Println("Good Bye!")
			return
		}
		rl.SaveHistory(line)
		sess.handleLine(line)
	}
}

func printBanner() {
	blueColor.Println(LINE)
	greenColor.Println(BANNER)
	blueColor.Println(LINE)
	yellowColor.Println("Version: " + VERSION + " | Author: " + AUTHOR)
	blueColor.Println(LINE)
	cyanColor.Println("Type a declaration to add it to the session, or an expression to check its type.")
	cyanColor.Println("Type '.exit' to quit.")
	blueColor.Println(LINE)
}

// handleLine type-checks one line of input: a declaration is appended to
// the session buffer if (and only if) the resulting whole-session
// program still checks clean; an expression is checked once, in a
// throwaway wrapper function, and never persisted.
func (s *session) handleLine(line string) {
	if isDeclLine(line) {
		s.checkDecl(line)
		return
	}
	s.checkExpr(line)
}

func isDeclLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return declKeywords[fields[0]]
}

func (s *session) checkDecl(line string) {
	candidate := s.buf + "\n" + line + "\n"
	result, _, ok := checkSource(candidate, s.cfg)
	if !ok {
		printDiagnosticsToStdout(result)
		return
	}
	s.buf = candidate
	greenColor.Println("ok")
}

func (s *session) checkExpr(line string) {
	candidate := s.buf + "\nfunc " + replExprFunc + "() -> Any {\n  return (" + line + ")\n}\n"
	result, file, ok := checkSource(candidate, s.cfg)
	if !ok {
		printDiagnosticsToStdout(result)
		return
	}
	t := exprFuncReturnType(file)
	if t == nil {
		redColor.Println("could not determine a type for that expression")
		return
	}
	yellowColor.Println(t.String())
}

// checkSource parses and checks a whole candidate session buffer,
// returning the analysis Result, the parsed file (for expression-mode
// callers that need to dig the synthetic wrapper back out), and whether
// parsing and analysis both finished without errors (a parse failure has
// no usable Result.Diags beyond the parser's own engine).
func checkSource(src string, cfg sema.BuiltinConfig) (sema.Result, *ast.File, bool) {
	mgr := source.NewManager()
	f := mgr.AddFile("<repl>", src)
	diags := diag.NewEngine()
	file := parser.ParseFile(f, diags)
	if diags.HasErrors() {
		return sema.Result{Diags: diags, OK: false}, file, false
	}
	ctx := sema.NewContextWithConfig(diags, cfg)
	result := sema.NewAnalyzer(ctx).Check([]*ast.File{file})
	return result, file, result.OK
}

// exprFuncReturnType digs the synthetic __replExpr wrapper back out of a
// checked file and returns its single return statement's solved type.
func exprFuncReturnType(file *ast.File) *types.DataType {
	for _, item := range file.Items {
		fn, ok := item.Decl.(*ast.FunctionDecl)
		if !ok || fn.Name != replExprFunc || fn.Body == nil {
			continue
		}
		for _, st := range fn.Body.Statements {
			ret, ok := st.(*ast.ReturnStmt)
			if ok && ret.Value != nil {
				return ret.Value.GetType()
			}
		}
	}
	return nil
}

func printDiagnosticsToStdout(result sema.Result) {
	for _, d := range result.Diags.All() {
		switch d.Severity {
		case diag.Error:
			redColor.Println(d.String())
		case diag.Warning:
			yellowColor.Println(d.String())
		default:
			cyanColor.Println(d.String())
		}
	}
}
