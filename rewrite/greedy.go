package rewrite

import (
	"fmt"

	"quill/mir"
)

// maxGreedyRounds bounds the greedy driver.  A well-formed pattern set
// reaches its fixpoint in a handful of rounds; hitting the bound means some
// pattern keeps rewriting its own output.
const maxGreedyRounds = 64

// ApplyGreedily applies the pattern set to the module until no pattern
// matches anywhere, ie. until a fixpoint is reached.  It is a best-effort
// driver: operations no pattern matches are simply left alone, and an empty
// pattern set is a no-op.  An error is returned only if a pattern itself
// fails or the fixpoint is never reached.
func ApplyGreedily(m *mir.Module, patterns []Pattern) error {
	index := byRoot(patterns)
	if len(index) == 0 {
		return nil
	}

	for round := 0; round < maxGreedyRounds; round++ {
		rw := newRewriter()

		var patternErr error
		mir.WalkModule(m, func(op *mir.Operation) {
			if patternErr != nil {
				return
			}

			for _, p := range index[op.Name()] {
				rw.setRoot(op)

				applied, err := p.Rewrite(op, rw)
				if err != nil {
					patternErr = err
					return
				}

				if applied {
					break
				}
			}
		})

		if patternErr != nil {
			return patternErr
		}

		if !rw.changed {
			return nil
		}
	}

	return fmt.Errorf("pattern set failed to reach a fixpoint after %d rounds", maxGreedyRounds)
}
