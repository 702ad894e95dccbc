package mir

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders the module as indented text for debugging.  The format is not
// a contract: it exists so that failing graphs can be inspected.
func (m *Module) Dump() string {
	p := &printer{names: make(map[*Value]string)}
	sb := &strings.Builder{}
	sb.WriteString(ModuleOpName + " {\n")
	p.printBlock(sb, m.Body(), 1)
	sb.WriteString("}\n")
	return sb.String()
}

type printer struct {
	names   map[*Value]string
	counter int
}

func (p *printer) name(v *Value) string {
	if name, ok := p.names[v]; ok {
		return name
	}

	name := fmt.Sprintf("%%%d", p.counter)
	p.counter++
	p.names[v] = name
	return name
}

func (p *printer) printBlock(sb *strings.Builder, b *Block, depth int) {
	indent := strings.Repeat("  ", depth)

	if len(b.args) > 0 {
		var args []string
		for _, arg := range b.args {
			args = append(args, p.name(arg)+": "+arg.Type().String())
		}
		sb.WriteString(indent + "^(" + strings.Join(args, ", ") + "):\n")
	}

	for _, op := range b.ops {
		p.printOp(sb, op, depth)
	}
}

func (p *printer) printOp(sb *strings.Builder, op *Operation, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))

	if len(op.results) > 0 {
		var results []string
		for _, res := range op.results {
			results = append(results, p.name(res))
		}
		sb.WriteString(strings.Join(results, ", ") + " = ")
	}

	sb.WriteString(op.name)

	if len(op.operands) > 0 {
		var operands []string
		for _, operand := range op.operands {
			operands = append(operands, p.name(operand))
		}
		sb.WriteString(" " + strings.Join(operands, ", "))
	}

	if len(op.attrs) > 0 {
		keys := make([]string, 0, len(op.attrs))
		for k := range op.attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var attrs []string
		for _, k := range keys {
			attrs = append(attrs, fmt.Sprintf("%s = %v", k, op.attrs[k]))
		}
		sb.WriteString(" {" + strings.Join(attrs, ", ") + "}")
	}

	if len(op.results) > 0 {
		var types []string
		for _, res := range op.results {
			types = append(types, res.Type().String())
		}
		sb.WriteString(" : " + strings.Join(types, ", "))
	}

	sb.WriteString("\n")

	for _, r := range op.regions {
		for _, b := range r.blocks {
			p.printBlock(sb, b, depth+1)
		}
	}
}
