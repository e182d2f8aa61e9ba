package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

func runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: lox tokens <file.lox>")
		return diagnostic.ExitUsage
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", args[0], err)
		return diagnostic.ExitIO
	}
	tokens, err := scanner.ScanTokens(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostic.DescribeError(err))
		return diagnostic.ExitCode(err)
	}
	writeTokens(os.Stdout, tokens)
	return diagnostic.ExitOK
}

func writeTokens(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d %s\n", tok.Line, tok)
	}
}

func runAST(args []string) int {
	format := "json"
	var files []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--format="):
			format = strings.TrimPrefix(arg, "--format=")
		case arg == "--format":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--format requires a value")
				return diagnostic.ExitUsage
			}
			i++
			format = args[i]
		case strings.HasPrefix(arg, "-") && arg != "-":
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", arg)
			return diagnostic.ExitUsage
		default:
			files = append(files, arg)
		}
	}
	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "usage: lox ast [--format=json|yaml] <file.lox>")
		return diagnostic.ExitUsage
	}
	if format != "json" && format != "yaml" {
		fmt.Fprintf(os.Stderr, "unsupported format %q (want json or yaml)\n", format)
		return diagnostic.ExitUsage
	}

	source, err := os.ReadFile(files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", files[0], err)
		return diagnostic.ExitIO
	}
	program, err := parser.ParseSource(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostic.DescribeError(err))
		return diagnostic.ExitCode(err)
	}

	var out []byte
	if format == "yaml" {
		out, err = encodeProgramYAML(program)
	} else {
		out, err = encodeProgramJSON(program)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode syntax tree: %v\n", err)
		return diagnostic.ExitIO
	}
	os.Stdout.Write(out)
	return diagnostic.ExitOK
}

func encodeProgramJSON(program *ast.Program) ([]byte, error) {
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// encodeProgramYAML re-reads the JSON form as a YAML node tree so key order
// follows the struct field order, then emits it in block style.
func encodeProgramYAML(program *ast.Program) ([]byte, error) {
	data, err := json.Marshal(program)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	clearStyles(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clearStyles(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyles(child)
	}
}
