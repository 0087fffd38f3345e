package symbols

import (
	"fmt"
)

// Kind discriminates symbols.
type Kind int

const (
	KindInvalid Kind = iota
	KindNamedType
	KindField
	KindProperty
)

var kindValueMap = map[Kind]string{
	KindNamedType: "named-type",
	KindField:     "field",
	KindProperty:  "property",
}

func (k Kind) String() string {
	v, ok := kindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// UnmarshalText for setting values with configs, unit files, etc.
func (k *Kind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for key, v := range kindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown symbol kind %q", text)
}

// NodeKind discriminates syntax elements.
type NodeKind int

const (
	NodeInvalid NodeKind = iota
	NodeFieldDeclaration
	NodePropertyDeclaration
	NodeAssignmentExpression
)

var nodeKindValueMap = map[NodeKind]string{
	NodeFieldDeclaration:     "field-declaration",
	NodePropertyDeclaration:  "property-declaration",
	NodeAssignmentExpression: "assignment-expression",
}

func (k NodeKind) String() string {
	v, ok := nodeKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

func (k *NodeKind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for key, v := range nodeKindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown syntax kind %q", text)
}
