// Package production provides integrations around a running machine:
// Graphviz export of the transition table and change publishing.
package production

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/comalice/undofsm/internal/primitives"
)

// Edge represents a transition edge.
type Edge struct {
	From  primitives.StateID
	To    primitives.StateID
	Label primitives.EventID
}

// ExportDOT generates Graphviz DOT source for the machine. Nodes follow the
// declaration order of the states; the current state is filled.
func ExportDOT(config primitives.MachineConfig, current primitives.StateID) string {
	var buf bytes.Buffer
	name := config.ID
	if name == "" {
		name = "Machine"
	}
	fmt.Fprintf(&buf, "digraph %s {\n", quote(name))
	buf.WriteString(`  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, s := range config.States {
		style := ""
		if s.ID == current {
			style = " style=\"rounded,filled\" fillcolor=lightgreen"
		}
		if s.ID == config.Initial {
			style += " peripheries=2"
		}
		fmt.Fprintf(&buf, "  %s [label=%s%s];\n", quote(string(s.ID)), quote(string(s.ID)), style)
	}

	for _, e := range collectEdges(config) {
		fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", quote(string(e.From)), quote(string(e.To)), quote(string(e.Label)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// collectEdges collects all declared transitions, per state in declaration
// order and per event by name.
func collectEdges(config primitives.MachineConfig) []Edge {
	var edges []Edge
	for i := range config.States {
		s := &config.States[i]
		for _, event := range s.Events() {
			to, ok := s.Target(event)
			if !ok {
				continue
			}
			edges = append(edges, Edge{From: s.ID, To: to, Label: event})
		}
	}
	return edges
}

func quote(id string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(id) + `"`
}
