// Package lower implements the conversion pipeline that rewrites a module
// expressed in the quantum and classical source dialects into the LLVM
// target dialect: constant-array flattening, subgraph fusion, the source
// type conversions, the lowering pattern catalogues, and the driving pass.
package lower

import (
	"fmt"
)

// PassError is an error raised by the lowering pipeline.  Every PassError is
// fatal: the enclosing module is marked failed and must be discarded.
type PassError struct {
	// Code identifies the failing stage.
	Code PassErrorCode

	// Message is a human-readable description naming the offending
	// construct where one is known.
	Message string
}

// PassErrorCode categorizes pipeline failures.
type PassErrorCode string

const (
	// ErrCodeFusion indicates the subgraph fusion step failed.
	ErrCodeFusion PassErrorCode = "FUSION"

	// ErrCodeConstantArray indicates a constant array with uses the
	// flattener cannot decompose.
	ErrCodeConstantArray PassErrorCode = "CONSTANT_ARRAY"

	// ErrCodeTypeConversion indicates a structurally invalid source type.
	ErrCodeTypeConversion PassErrorCode = "TYPE_CONVERSION"

	// ErrCodeLegalization indicates some operation could not be rewritten
	// into the legal target set.
	ErrCodeLegalization PassErrorCode = "LEGALIZATION"
)

func (e *PassError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// passErrorf creates a PassError with a formatted message.
func passErrorf(code PassErrorCode, format string, args ...interface{}) *PassError {
	return &PassError{Code: code, Message: fmt.Sprintf(format, args...)}
}
