package rewrite

import (
	"fmt"

	"quill/mir"
)

// maxConversionRounds bounds the conversion driver.  Each legitimate
// one-to-many lowering strictly reduces the number of illegal operations, so
// the bound is only reached by a cyclic pattern set.
const maxConversionRounds = 64

// ApplyFullConversion rewrites the module until every operation is legal
// under the target declaration.  The conversion is all-or-nothing: if any
// operation cannot be legalized, an error describing it is returned and the
// module must be discarded by the caller; already-applied rewrites are not
// rolled back.
func ApplyFullConversion(m *mir.Module, target *Target, patterns []Pattern) error {
	index := byRoot(patterns)

	for round := 0; round < maxConversionRounds; round++ {
		illegal := illegalOps(m, target)
		if len(illegal) == 0 {
			return nil
		}

		rw := newRewriter()

		for _, op := range illegal {
			if op.Erased() {
				continue
			}

			if err := legalizeOp(op, index, rw); err != nil {
				return err
			}
		}

		if !rw.changed {
			// No pattern made progress: report the first offender.
			return fmt.Errorf("failed to legalize operation `%s`", illegal[0].Name())
		}
	}

	return fmt.Errorf("conversion failed to terminate after %d rounds", maxConversionRounds)
}

// legalizeOp attempts to apply some pattern at op.  Operations that no
// pattern rewrites are left in place; the driving loop detects the lack of
// progress and fails the conversion.
func legalizeOp(op *mir.Operation, index map[string][]Pattern, rw *Rewriter) error {
	for _, p := range index[op.Name()] {
		rw.setRoot(op)

		applied, err := p.Rewrite(op, rw)
		if err != nil {
			return err
		}

		if applied {
			return nil
		}
	}

	return nil
}

// illegalOps collects every operation in the module that violates the
// target declaration, in walk order.
func illegalOps(m *mir.Module, target *Target) []*mir.Operation {
	var illegal []*mir.Operation

	mir.WalkModule(m, func(op *mir.Operation) {
		if !target.IsLegal(op) {
			illegal = append(illegal, op)
		}
	})

	return illegal
}
