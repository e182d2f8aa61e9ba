package diagnostic

import (
	"errors"
	"fmt"
)

// Category groups diagnostics by the stage that produced them.
type Category int

const (
	CategoryScan Category = iota
	CategoryParse
	CategoryRuntime
)

func (c Category) String() string {
	switch c {
	case CategoryScan:
		return "scan"
	case CategoryParse:
		return "parse"
	case CategoryRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("unknown_category_%d", int(c))
	}
}

// Diagnostic is the shared shape of scan, parse and runtime failures.
// Implementations are returned as plain errors and recovered with As.
type Diagnostic interface {
	error
	Category() Category
	SourceLine() int
	// Detail is the human-readable message without the line prefix.
	Detail() string
}

// Exit statuses used by file mode.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitScan    = 65
	ExitParse   = 66
	ExitRuntime = 70
	ExitIO      = 74
)

// As extracts the Diagnostic carried by err, if any.
func As(err error) (Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var diag Diagnostic
	if errors.As(err, &diag) {
		return diag, true
	}
	return nil, false
}

// Describe renders a diagnostic as `[line N] Error: message`.
func Describe(d Diagnostic) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("[line %d] Error: %s", d.SourceLine(), d.Detail())
}

// DescribeError renders err with Describe when it carries a diagnostic and
// falls back to the plain error text otherwise.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	if diag, ok := As(err); ok {
		return Describe(diag)
	}
	return err.Error()
}

// ExitCode maps err to the file-mode process status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	diag, ok := As(err)
	if !ok {
		return ExitIO
	}
	switch diag.Category() {
	case CategoryScan:
		return ExitScan
	case CategoryParse:
		return ExitParse
	case CategoryRuntime:
		return ExitRuntime
	default:
		return ExitIO
	}
}
