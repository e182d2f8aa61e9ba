package interpreter

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

func evalSource(t *testing.T, source string) (runtime.Value, error) {
	t.Helper()
	tokens, err := scanner.ScanTokens(source)
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	expr, err := parser.ParseExpression(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return New().Evaluate(expr)
}

func mustEval(t *testing.T, source string) runtime.Value {
	t.Helper()
	val, err := evalSource(t, source)
	if err != nil {
		t.Fatalf("evaluate %q: %v", source, err)
	}
	return val
}

func runtimeError(t *testing.T, err error) *RuntimeError {
	t.Helper()
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T (%v)", err, err)
	}
	return rerr
}

func runProgram(t *testing.T, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(WithOutput(&out)).Run(source)
	return out.String(), err
}

func TestEvaluateArithmetic(t *testing.T) {
	cases := []struct {
		source string
		want   runtime.Value
	}{
		{"1 - 2 - 3", runtime.NumberValue{Val: -4}},
		{"2 + 3 * 4", runtime.NumberValue{Val: 14}},
		{"(2 + 3) * 4", runtime.NumberValue{Val: 20}},
		{"8 / 4 / 2", runtime.NumberValue{Val: 1}},
		{"-(1 + 2)", runtime.NumberValue{Val: -3}},
		{"--5", runtime.NumberValue{Val: 5}},
		{"0.5 + 0.25", runtime.NumberValue{Val: 0.75}},
		{`"foo" + "bar"`, runtime.StringValue{Val: "foobar"}},
		{`"" + ""`, runtime.StringValue{Val: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			if got := mustEval(t, tc.source); got != tc.want {
				t.Fatalf("%s = %#v, want %#v", tc.source, got, tc.want)
			}
		})
	}
}

func TestEvaluateComparisonAndEquality(t *testing.T) {
	cases := []struct {
		source string
		want   bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"4 >= 5", false},
		{"nil == nil", true},
		{"nil != nil", false},
		{"1 == 1", true},
		{"1 != 2", true},
		{`"a" == "a"`, true},
		{`"a" != "b"`, true},
		{"true == true", true},
		{"true == false", false},
		{"1 + 1 == 2", true},
		{"1 < 2 == true", true},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			got := mustEval(t, tc.source)
			if got != (runtime.BoolValue{Val: tc.want}) {
				t.Fatalf("%s = %#v, want %v", tc.source, got, tc.want)
			}
		})
	}
}

func TestEvaluateNot(t *testing.T) {
	cases := map[string]bool{
		"!nil":   true,
		"!false": true,
		"!true":  false,
		"!0":     false,
		`!""`:    false,
		"!!nil":  false,
		"!!1":    true,
	}
	for source, want := range cases {
		if got := mustEval(t, source); got != (runtime.BoolValue{Val: want}) {
			t.Fatalf("%s = %#v, want %v", source, got, want)
		}
	}
}

func TestEvaluateDivisionByZeroFollowsIEEE(t *testing.T) {
	pos := mustEval(t, "1 / 0").(runtime.NumberValue)
	if !math.IsInf(pos.Val, 1) {
		t.Fatalf("1 / 0 = %v, want +Inf", pos.Val)
	}
	neg := mustEval(t, "-1 / 0").(runtime.NumberValue)
	if !math.IsInf(neg.Val, -1) {
		t.Fatalf("-1 / 0 = %v, want -Inf", neg.Val)
	}
	nan := mustEval(t, "0 / 0").(runtime.NumberValue)
	if !math.IsNaN(nan.Val) {
		t.Fatalf("0 / 0 = %v, want NaN", nan.Val)
	}
}

func TestOverflowingLiteralPrintsInfinity(t *testing.T) {
	huge := strings.Repeat("9", 400)
	out, err := runProgram(t, "print "+huge+";\nprint -"+huge+";")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "inf\n-inf\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestPrintWritesFormattedValues(t *testing.T) {
	source := `print 1 + 2;
print 2.5;
print -4;
print "hello" + " " + "world";
print nil;
print 1 == 1;
print 1 / 0;
3 * 3;`
	out, err := runProgram(t, source)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "3\n2.5\n-4\nhello world\nnil\ntrue\ninf\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunStopsAtFirstRuntimeError(t *testing.T) {
	out, err := runProgram(t, "print 1;\nprint 1 + nil;\nprint 2;")
	if out != "1\n" {
		t.Fatalf("expected only the first print before failure, got %q", out)
	}
	rerr := runtimeError(t, err)
	if rerr.Line != 2 {
		t.Fatalf("error line = %d, want 2", rerr.Line)
	}
}

func TestRunReturnsScanAndParseDiagnostics(t *testing.T) {
	_, err := runProgram(t, `print "abc`)
	var serr *scanner.Error
	if !errors.As(err, &serr) || serr.Line != 1 {
		t.Fatalf("expected scan error on line 1, got %v", err)
	}
	if diagnostic.ExitCode(err) != diagnostic.ExitScan {
		t.Fatalf("exit code = %d", diagnostic.ExitCode(err))
	}

	out, err := runProgram(t, "print 1;\nprint (2;")
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if out != "" {
		t.Fatalf("nothing may run when parsing fails, got %q", out)
	}
	if diagnostic.ExitCode(err) != diagnostic.ExitParse {
		t.Fatalf("exit code = %d", diagnostic.ExitCode(err))
	}
}

func TestRunHasNoStateAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	if err := interp.Run("print 1;"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := interp.Run("print 1 + nil;"); err == nil {
		t.Fatalf("expected second run to fail")
	}
	if err := interp.Run("print 2;"); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if out.String() != "1\n2\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lox")
	if err := os.WriteFile(path, []byte("print \"from file\";\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	if err := New(WithOutput(&out)).RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if out.String() != "from file\n" {
		t.Fatalf("output = %q", out.String())
	}

	err := New(WithOutput(&out)).RunFile(filepath.Join(dir, "missing.lox"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if diagnostic.ExitCode(err) != diagnostic.ExitIO {
		t.Fatalf("exit code = %d", diagnostic.ExitCode(err))
	}
}

func TestExecuteProgramBuiltByHand(t *testing.T) {
	var out bytes.Buffer
	program := ast.Prog(
		ast.Print(ast.Bin(ast.BinaryMultiply, ast.Group(ast.Bin(ast.BinaryAdd, ast.Num(2), ast.Num(3))), ast.Num(4))),
		ast.ExprStmt(ast.Str("discarded")),
		ast.Print(ast.Not(ast.Nil())),
	)
	if err := New(WithOutput(&out)).ExecuteProgram(program); err != nil {
		t.Fatalf("ExecuteProgram: %v", err)
	}
	if out.String() != "20\ntrue\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestStringsPrintVerbatim(t *testing.T) {
	out, err := runProgram(t, `print "a\nb";`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out, `a\nb`) {
		t.Fatalf("escape sequences must not be interpreted, got %q", out)
	}
}
