package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

const defaultPrompt = "> "

var replBanner = fmt.Sprintf("%s\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", cliToolVersion)

// lineReader is the slice of *liner.State the prompt loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type replSession struct {
	reader lineReader
	interp *interpreter.Interpreter
	out    io.Writer
	errOut io.Writer
	prompt string
}

func runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return diagnostic.ExitUsage
	}

	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		fmt.Fprintf(os.Stderr, "warning: ignoring manifest: %v\n", err)
		manifest = nil
	}
	prompt := defaultPrompt
	if manifest != nil && manifest.REPL.Prompt != "" {
		prompt = manifest.REPL.Prompt
	}
	histPath := driver.HistoryPath(manifest)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(os.Stdout, replBanner)
	session := &replSession{
		reader: ln,
		interp: interpreter.New(interpreter.WithOutput(os.Stdout)),
		out:    os.Stdout,
		errOut: os.Stderr,
		prompt: prompt,
	}
	return session.loop()
}

// loop reads lines until EOF or :quit. Diagnostics are reported and the
// session carries on.
func (s *replSession) loop() int {
	for {
		line, err := s.reader.Prompt(s.prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return diagnostic.ExitOK
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(s.errOut, "read input: %v\n", err)
			return diagnostic.ExitIO
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		s.reader.AppendHistory(line)

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q", ":exit":
				return diagnostic.ExitOK
			case ":help":
				fmt.Fprintln(s.out, "REPL commands:\n  :quit    Exit the REPL")
			default:
				fmt.Fprintf(s.errOut, "unknown command %s\n", trimmed)
			}
			continue
		}

		if err := s.eval(line); err != nil {
			fmt.Fprintln(s.errOut, diagnostic.DescribeError(err))
		}
	}
}

// eval echoes the value of a bare expression and otherwise runs the line as
// a program.
func (s *replSession) eval(line string) error {
	tokens, err := scanner.ScanTokens(line)
	if err != nil {
		return err
	}
	if expr, perr := parser.ParseExpression(tokens); perr == nil {
		val, err := s.interp.Evaluate(expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, runtime.Format(val))
		return nil
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	return s.interp.ExecuteProgram(program)
}
