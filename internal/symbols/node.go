package symbols

import (
	"github.com/sirkon/demolint/internal/lintdiag"
)

// Node is a syntax element a rule can subscribe to.
type Node struct {
	Kind NodeKind

	// Symbol is the ID of the declared member for declarations and of the
	// left-hand side target for assignments. Empty when the host could not bind it.
	Symbol string

	// Static reports the declaration carries a static modifier. Assignments ignore it.
	Static bool

	Location lintdiag.Location
}

// Valid reports whether the node is a known syntax element.
func (n Node) Valid() bool {
	_, ok := nodeKindValueMap[n.Kind]
	return ok
}

// Unit is a single compiled unit: a file with its declared symbols and syntax elements.
type Unit struct {
	Name string

	// Generated marks units produced by code generators.
	Generated bool

	Symbols []Symbol
	Nodes   []Node
}
