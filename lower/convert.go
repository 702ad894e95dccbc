package lower

import (
	"quill/llc"
	"quill/mir"
	"quill/rewrite"
)

// ConvertToQIR lowers a module from the source dialects to the target
// dialect, in a fixed sequence with no retries:
//
//  1. Fuse recognized subgraphs into codegen-friendly operations.
//  2. Flatten constant-array initializations into scalar stores.
//  3. Declare the legalization target: the target dialect plus the module
//     container.
//  4. Register the lowering pattern catalogues, sharing one measurement
//     counter across the quantum patterns.
//  5. Apply the full conversion.
//
// Every failure is fatal: the module is marked failed, no later step runs,
// and the partially-rewritten graph must be discarded by the caller.
func ConvertToQIR(m *mir.Module) error {
	if err := fuseSubgraphs(m, fuseRules); err != nil {
		m.MarkFailed()
		return passErrorf(ErrCodeFusion, "subgraph fusion failed: %s", err)
	}

	if err := flattenConstantArrays(m); err != nil {
		m.EmitError("unexpected constant arrays")
		m.MarkFailed()
		return err
	}

	target := rewrite.NewTarget()
	target.AddLegalDialect(llc.DialectName)
	target.AddLegalOp(mir.ModuleOpName)

	tc := NewTypeConverter()

	// The measurement counter lives exactly as long as this run.  A fresh
	// module conversion always starts counting from zero.
	measureCounter := 0

	var patterns []rewrite.Pattern
	patterns = append(patterns, stdPatterns(tc)...)
	patterns = append(patterns, cclPatterns(tc)...)
	patterns = append(patterns, qopPatterns(&measureCounter)...)

	if err := rewrite.ApplyFullConversion(m, target, patterns); err != nil {
		m.MarkFailed()

		if perr, ok := err.(*PassError); ok {
			return perr
		}

		return passErrorf(ErrCodeLegalization, "%s", err)
	}

	return nil
}
