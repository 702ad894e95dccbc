package lower

import (
	"quill/mir"
	"quill/rewrite"
)

// IdiomRule recognizes one multi-operation idiom rooted at a given
// operation name and collapses it into a simpler form.  Rules are pure:
// Apply either rewrites the matched subgraph through the rewriter and
// returns true, or leaves the graph untouched and returns false.
type IdiomRule struct {
	// Name identifies the rule in diagnostics.
	Name string

	// Root is the operation name the rule matches on.
	Root string

	// Apply attempts the rewrite at op.
	Apply func(op *mir.Operation, rw *rewrite.Rewriter) bool
}

// fuseRules is the ordered list of active idiom rules, applied greedily to a
// fixpoint before legalization.  The list is empty today: fusing recognized
// subgraphs into single codegen-friendly operations keeps the one-to-many
// lowering patterns simple, and the hook point exists so rules can be added
// without touching the driver.
var fuseRules []IdiomRule

// fuseSubgraphs runs the idiom rules over the module until no rule matches
// anywhere.  Running with an empty rule set, or over a graph containing no
// matching idioms, is a no-op.
func fuseSubgraphs(m *mir.Module, rules []IdiomRule) error {
	patterns := make([]rewrite.Pattern, len(rules))
	for i, rule := range rules {
		apply := rule.Apply
		patterns[i] = rewrite.RewriteFunc{
			RootName: rule.Root,
			Fn: func(op *mir.Operation, rw *rewrite.Rewriter) (bool, error) {
				return apply(op, rw), nil
			},
		}
	}

	return rewrite.ApplyGreedily(m, patterns)
}
