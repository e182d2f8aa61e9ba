package main

import (
	"fmt"
	"os"

	"lox/interpreter-go/pkg/diagnostic"
)

const cliToolVersion = "lox-cli 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runRepl(nil)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "tokens":
		return runTokens(args[1:])
	case "ast":
		return runAST(args[1:])
	case "fetch":
		return runFetch(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		if len(args[0]) > 1 && args[0][0] == '-' {
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", args[0])
			printUsage()
			return diagnostic.ExitUsage
		}
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  lox                           start the interactive prompt")
	fmt.Fprintln(os.Stderr, "  lox <file.lox>                run a script")
	fmt.Fprintln(os.Stderr, "  lox run [file.lox|target]     run a script or a lox.yml target")
	fmt.Fprintln(os.Stderr, "  lox tokens <file.lox>         print the token stream")
	fmt.Fprintln(os.Stderr, "  lox ast [--format=json|yaml] <file.lox>")
	fmt.Fprintln(os.Stderr, "                                print the syntax tree")
	fmt.Fprintln(os.Stderr, "  lox fetch                     fetch git targets and write lox.lock")
	fmt.Fprintln(os.Stderr, "  lox repl                      start the interactive prompt")
	fmt.Fprintln(os.Stderr, "  lox --version")
}
