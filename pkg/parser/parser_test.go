package parser_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

func assertProgramsEqual(t testing.TB, expected, actual *ast.Program) {
	t.Helper()
	ast.ClearLines(expected)
	ast.ClearLines(actual)
	if reflect.DeepEqual(expected, actual) {
		return
	}
	wantJSON, _ := json.MarshalIndent(expected, "", "  ")
	gotJSON, _ := json.MarshalIndent(actual, "", "  ")
	if bytes.Equal(wantJSON, gotJSON) {
		return
	}
	t.Fatalf("program mismatch\nexpected: %s\n   actual: %s", wantJSON, gotJSON)
}

func mustParse(t testing.TB, source string) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource(source)
	if err != nil {
		t.Fatalf("ParseSource(%q) error: %v", source, err)
	}
	return program
}

func parseError(t testing.TB, source string) *parser.Error {
	t.Helper()
	program, err := parser.ParseSource(source)
	if err == nil {
		t.Fatalf("expected parse error for %q, got %#v", source, program)
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.Error, got %T (%v)", err, err)
	}
	if program != nil {
		t.Fatalf("expected nil program alongside error")
	}
	return perr
}

func TestParseStatements(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   *ast.Program
	}{
		{
			name:   "empty",
			source: "// nothing here",
			want:   ast.Prog(),
		},
		{
			name:   "print literal",
			source: `print "hi";`,
			want:   ast.Prog(ast.Print(ast.Str("hi"))),
		},
		{
			name:   "literals",
			source: "true; false; nil; 2.5; name;",
			want: ast.Prog(
				ast.ExprStmt(ast.Bool(true)),
				ast.ExprStmt(ast.Bool(false)),
				ast.ExprStmt(ast.Nil()),
				ast.ExprStmt(ast.Num(2.5)),
				ast.ExprStmt(ast.Var("name")),
			),
		},
		{
			name:   "subtraction folds left",
			source: "1 - 2 - 3;",
			want: ast.Prog(ast.ExprStmt(
				ast.Bin(ast.BinarySubtract, ast.Bin(ast.BinarySubtract, ast.Num(1), ast.Num(2)), ast.Num(3)),
			)),
		},
		{
			name:   "factor binds tighter than term",
			source: "2 + 3 * 4;",
			want: ast.Prog(ast.ExprStmt(
				ast.Bin(ast.BinaryAdd, ast.Num(2), ast.Bin(ast.BinaryMultiply, ast.Num(3), ast.Num(4))),
			)),
		},
		{
			name:   "grouping overrides precedence",
			source: "(2 + 3) * 4;",
			want: ast.Prog(ast.ExprStmt(
				ast.Bin(ast.BinaryMultiply, ast.Group(ast.Bin(ast.BinaryAdd, ast.Num(2), ast.Num(3))), ast.Num(4)),
			)),
		},
		{
			name:   "division folds left",
			source: "8 / 4 / 2;",
			want: ast.Prog(ast.ExprStmt(
				ast.Bin(ast.BinaryDivide, ast.Bin(ast.BinaryDivide, ast.Num(8), ast.Num(4)), ast.Num(2)),
			)),
		},
		{
			name:   "comparison below equality",
			source: "print 1 == 2 != false < 3;",
			want: ast.Prog(ast.Print(
				ast.Bin(ast.BinaryNotEqual,
					ast.Bin(ast.BinaryEqual, ast.Num(1), ast.Num(2)),
					ast.Bin(ast.BinaryLess, ast.Bool(false), ast.Num(3))),
			)),
		},
		{
			name:   "comparison operators",
			source: "1 > 2 >= 3 <= 4;",
			want: ast.Prog(ast.ExprStmt(
				ast.Bin(ast.BinaryLessEqual,
					ast.Bin(ast.BinaryGreaterEqual,
						ast.Bin(ast.BinaryGreater, ast.Num(1), ast.Num(2)),
						ast.Num(3)),
					ast.Num(4)),
			)),
		},
		{
			name:   "unary nests to the right",
			source: "--x; !!true;",
			want: ast.Prog(
				ast.ExprStmt(ast.Neg(ast.Neg(ast.Var("x")))),
				ast.ExprStmt(ast.Not(ast.Not(ast.Bool(true)))),
			),
		},
		{
			name:   "unary binds tighter than factor",
			source: "-2 * !x;",
			want: ast.Prog(ast.ExprStmt(
				ast.Bin(ast.BinaryMultiply, ast.Neg(ast.Num(2)), ast.Not(ast.Var("x"))),
			)),
		},
		{
			name:   "nested groupings are kept",
			source: "((1));",
			want:   ast.Prog(ast.ExprStmt(ast.Group(ast.Group(ast.Num(1))))),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertProgramsEqual(t, tc.want, mustParse(t, tc.source))
		})
	}
}

func TestParseRecordsLines(t *testing.T) {
	program := mustParse(t, "print 1;\n\n1\n+\n2;")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	if program.Statements[0].SourceLine() != 1 {
		t.Fatalf("print statement line = %d", program.Statements[0].SourceLine())
	}
	stmt, ok := program.Statements[1].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Statements[1])
	}
	if stmt.SourceLine() != 3 {
		t.Fatalf("expression statement line = %d, want 3", stmt.SourceLine())
	}
	bin := stmt.Expression.(*ast.Binary)
	if bin.SourceLine() != 4 {
		t.Fatalf("binary line = %d, want operator line 4", bin.SourceLine())
	}
	if bin.Left.SourceLine() != 3 || bin.Right.SourceLine() != 5 {
		t.Fatalf("operand lines = %d/%d", bin.Left.SourceLine(), bin.Right.SourceLine())
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		line     int
		found    token.Kind
		expected string
		detail   string
	}{
		{
			name:     "missing close paren",
			source:   "print (1 + 2;",
			line:     1,
			found:    token.Semicolon,
			expected: "')'",
			detail:   "expected ')' after expression, found `;`",
		},
		{
			name:     "missing semicolon",
			source:   "print 1\n",
			line:     2,
			found:    token.EOF,
			expected: "';'",
			detail:   "expected ';' after print statement, found end of input",
		},
		{
			name:     "missing semicolon before next statement",
			source:   "1 + 2\nprint 3;",
			line:     2,
			found:    token.Print,
			expected: "';'",
			detail:   "expected ';' after expression statement, found `print`",
		},
		{
			name:     "dangling operator",
			source:   "1 + ;",
			line:     1,
			found:    token.Semicolon,
			expected: "expression",
			detail:   "expected expression, found `;`",
		},
		{
			name:     "this is not a primary",
			source:   "\nthis;",
			line:     2,
			found:    token.This,
			expected: "expression",
			detail:   "expected expression, found `this`",
		},
		{
			name:     "empty grouping",
			source:   "();",
			line:     1,
			found:    token.RightParen,
			expected: "expression",
			detail:   "expected expression, found `)`",
		},
		{
			name:     "binary without left operand",
			source:   "* 3;",
			line:     1,
			found:    token.Star,
			expected: "expression",
			detail:   "expected expression, found `*`",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perr := parseError(t, tc.source)
			if perr.Line != tc.line {
				t.Fatalf("line = %d, want %d", perr.Line, tc.line)
			}
			if perr.Found.Kind != tc.found {
				t.Fatalf("found = %s, want %s", perr.Found.Kind, tc.found)
			}
			if perr.Expected != tc.expected {
				t.Fatalf("expected = %q, want %q", perr.Expected, tc.expected)
			}
			if perr.Detail() != tc.detail {
				t.Fatalf("detail = %q, want %q", perr.Detail(), tc.detail)
			}
			if perr.Category() != diagnostic.CategoryParse {
				t.Fatalf("category = %s", perr.Category())
			}
		})
	}
}

func TestParseErrorNamesLiteralToken(t *testing.T) {
	perr := parseError(t, `print "a" "b";`)
	if got := diagnostic.Describe(perr); got != "[line 1] Error: expected ';' after print statement, found string `\"b\"`" {
		t.Fatalf("Describe = %q", got)
	}
}

func TestParseSourcePropagatesScanErrors(t *testing.T) {
	_, err := parser.ParseSource("print $;")
	var serr *scanner.Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected scanner error, got %T (%v)", err, err)
	}
}

func TestParseExpression(t *testing.T) {
	tokens, err := scanner.ScanTokens("1 + 2 * 3")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	expr, err := parser.ParseExpression(tokens)
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	want := ast.Bin(ast.BinaryAdd, ast.Num(1), ast.Bin(ast.BinaryMultiply, ast.Num(2), ast.Num(3)))
	assertProgramsEqual(t, ast.Prog(ast.ExprStmt(want)), ast.Prog(ast.ExprStmt(expr)))

	tokens, err = scanner.ScanTokens("1 + 2;")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := parser.ParseExpression(tokens); err == nil || !strings.Contains(err.Error(), "unexpected token after expression") {
		t.Fatalf("expected trailing token error, got %v", err)
	}
}

func TestParseWithoutTrailingEOF(t *testing.T) {
	tokens := []token.Token{token.New(token.Print, 1), token.NewNumber(7, 1), token.New(token.Semicolon, 1)}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertProgramsEqual(t, ast.Prog(ast.Print(ast.Num(7))), program)
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{"", ";", "(", ")", "print", "print ;", "!", "-", "1 1;", "((((", "== 1;", "var x = 1;", "class A {}"}
	for _, input := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("ParseSource(%q) panicked: %v", input, r)
				}
			}()
			_, _ = parser.ParseSource(input)
		}()
	}
}
