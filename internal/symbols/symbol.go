package symbols

import (
	"slices"
	"strings"

	"github.com/sirkon/demolint/internal/lintdiag"
)

// Symbol is a resolved program symbol as the host sees it.
//
// Hosts create and own symbols. Rules never get a Symbol directly, they work with [View].
type Symbol struct {
	Kind Kind

	// ID is a host-unique qualified name, like "ConsoleApp.Program.MyDisposable".
	ID string

	// Name is the simple name, like "MyDisposable".
	Name string

	// Type refers to the ID of the declared type symbol. Only fields and properties have it.
	Type string

	// Interfaces is a set of simple names of implemented interfaces.
	Interfaces []string

	// Attributes is a set of simple names of applied attributes.
	Attributes []string

	Static   bool
	Location lintdiag.Location
}

// View is a read-only window over a host symbol. The zero value is an invalid view.
type View struct {
	s *Symbol
}

// ViewOf wraps a symbol. A nil symbol gives an invalid view.
func ViewOf(s *Symbol) View {
	return View{s: s}
}

// Valid reports whether the view refers to a symbol.
func (v View) Valid() bool { return v.s != nil }

// Kind returns KindInvalid for invalid views.
func (v View) Kind() Kind {
	if v.s == nil {
		return KindInvalid
	}
	return v.s.Kind
}

func (v View) ID() string {
	if v.s == nil {
		return ""
	}
	return v.s.ID
}

func (v View) Name() string {
	if v.s == nil {
		return ""
	}
	return v.s.Name
}

func (v View) TypeRef() string {
	if v.s == nil {
		return ""
	}
	return v.s.Type
}

func (v View) IsStatic() bool {
	return v.s != nil && v.s.Static
}

func (v View) Location() lintdiag.Location {
	if v.s == nil {
		return lintdiag.Location{}
	}
	return v.s.Location
}

// Interfaces returns a copy of implemented interface names.
func (v View) Interfaces() []string {
	if v.s == nil {
		return nil
	}
	return slices.Clone(v.s.Interfaces)
}

// Attributes returns a copy of applied attribute names.
func (v View) Attributes() []string {
	if v.s == nil {
		return nil
	}
	return slices.Clone(v.s.Attributes)
}

// Implements reports whether the symbol implements an interface with exactly this name.
func (v View) Implements(name string) bool {
	return v.s != nil && slices.Contains(v.s.Interfaces, name)
}

// ImplementsSuffix returns the first implemented interface whose name ends with suffix.
func (v View) ImplementsSuffix(suffix string) (string, bool) {
	if v.s == nil {
		return "", false
	}
	for _, name := range v.s.Interfaces {
		if strings.HasSuffix(name, suffix) {
			return name, true
		}
	}

	return "", false
}

// HasAttribute reports whether an attribute with exactly this name is applied.
func (v View) HasAttribute(name string) bool {
	return v.s != nil && slices.Contains(v.s.Attributes, name)
}

// AsNamedType returns the view itself if it is a named type and an invalid view otherwise.
func (v View) AsNamedType() View {
	if v.Kind() != KindNamedType {
		return View{}
	}
	return v
}

// AsMember returns the view itself if it is a field or a property and an invalid view otherwise.
func (v View) AsMember() View {
	switch v.Kind() {
	case KindField, KindProperty:
		return v
	default:
		return View{}
	}
}
