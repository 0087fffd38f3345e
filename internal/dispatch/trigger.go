package dispatch

import (
	"fmt"

	"github.com/sirkon/demolint/internal/symbols"
)

// TriggerKind is a category of program elements a rule can subscribe to.
type TriggerKind int

const (
	triggerInvalid TriggerKind = iota
	TriggerCompilationStart
	TriggerNamedType
	TriggerFieldDeclaration
	TriggerPropertyDeclaration
	TriggerAssignmentExpression
)

var triggerKindValueMap = map[TriggerKind]string{
	TriggerCompilationStart:     "compilation-start",
	TriggerNamedType:            "named-type",
	TriggerFieldDeclaration:     "field-declaration",
	TriggerPropertyDeclaration:  "property-declaration",
	TriggerAssignmentExpression: "assignment-expression",
}

func (k TriggerKind) String() string {
	v, ok := triggerKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// IsElement reports whether the trigger is notified per program element, i.e. everything
// except the compilation start.
func (k TriggerKind) IsElement() bool {
	_, ok := triggerKindValueMap[k]
	return ok && k != TriggerCompilationStart
}

// triggerOf maps syntax elements to their triggers.
func triggerOf(kind symbols.NodeKind) TriggerKind {
	switch kind {
	case symbols.NodeFieldDeclaration:
		return TriggerFieldDeclaration
	case symbols.NodePropertyDeclaration:
		return TriggerPropertyDeclaration
	case symbols.NodeAssignmentExpression:
		return TriggerAssignmentExpression
	default:
		return triggerInvalid
	}
}
