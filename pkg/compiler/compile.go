package compiler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stil/pkg/logging"
)

// ErrDiagnostics is wrapped by Compile when the source parsed but errors
// were reported along the way.
var ErrDiagnostics = errors.New("source has errors")

// Options configures one Compile call.
type Options struct {
	Name             string          // file name for diagnostics
	KeywordTableSize int             // 0 selects the default
	Logger           *logging.Logger // nil discards diagnostics
}

// Result is the outcome of one compilation.
type Result struct {
	ID     uuid.UUID // identifies the run in log output
	Unit   *CompilationUnit
	Errors int // diagnostics reported through Lexer.Report
}

// Compile lexes and parses src.
//
// A fatal parse error is returned as is (a *SyntaxError) with a nil Result.
// When parsing completes but diagnostics were reported, the Result is
// returned together with an error wrapping ErrDiagnostics.
func Compile(src []byte, opts Options) (*Result, error) {
	size := opts.KeywordTableSize
	if size == 0 {
		size = defaultKeywordCapacity
	}
	keywords, err := NewDefaultKeywordTable(size)
	if err != nil {
		return nil, fmt.Errorf("keyword table: %w", err)
	}

	lx := NewLexer(opts.Name, src, keywords, opts.Logger)
	cu, err := NewParser(lx).ParseCompilationUnit()
	if err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.New(), Unit: cu, Errors: lx.ErrorCount()}
	if res.Errors > 0 {
		return res, fmt.Errorf("couldn't compile due to %d errors: %w", res.Errors, ErrDiagnostics)
	}
	return res, nil
}
