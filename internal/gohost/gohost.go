package gohost

import (
	"go/ast"
	"go/token"
	"go/types"
	"maps"
	"slices"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

// AttributeDirective applies attributes to the type declaration it documents:
//
//	//demolint:attribute MyAttribute OtherAttribute
//	type Handler struct{}
const AttributeDirective = "//demolint:attribute"

// Package is a type-checked Go package.
type Package struct {
	Fset  *token.FileSet
	Files []*ast.File
	Types *types.Package
	Info  *types.Info

	// Inspector over Files. It is created when nil.
	Inspector *inspector.Inspector
}

// Result is a compilation built out of a Go package.
type Result struct {
	Compilation *symbols.Compilation

	positions map[lintdiag.Location]token.Pos
}

// Pos returns the position a location was built from. It returns token.NoPos for locations
// not produced by this result.
func (r *Result) Pos(loc lintdiag.Location) token.Pos {
	return r.positions[loc]
}

// Build translates pkg into a compilation. Every file is a unit:
//
//   - Non-interface package level types are named types. Their interfaces are names of non-empty
//     interfaces of the package itself and of its imports the type or a pointer to it implements.
//   - Package level variables are static fields, struct fields are instance fields.
//   - Plain assignments to package level variables are assignment expressions.
//
// Go has no properties, so no property symbols are produced.
func Build(pkg Package) (*Result, error) {
	b := &builder{
		pkg:       pkg,
		units:     map[string]*symbols.Unit{},
		declared:  map[string]struct{}{},
		refs:      map[string]symbols.Symbol{},
		positions: map[lintdiag.Location]token.Pos{},
	}
	b.interfaces = interfacesOf(pkg.Types)
	for _, imp := range pkg.Types.Imports() {
		b.interfaces = append(b.interfaces, interfacesOf(imp)...)
	}

	var order []*symbols.Unit
	for _, file := range pkg.Files {
		u := &symbols.Unit{
			Name:      pkg.Fset.File(file.Pos()).Name(),
			Generated: ast.IsGenerated(file),
		}
		b.units[u.Name] = u
		order = append(order, u)
	}

	pector := pkg.Inspector
	if pector == nil {
		pector = inspector.New(pkg.Files)
	}

	nodeFilter := []ast.Node{
		(*ast.GenDecl)(nil),
		(*ast.AssignStmt)(nil),
	}
	pector.Preorder(nodeFilter, func(node ast.Node) {
		switch n := node.(type) {
		case *ast.GenDecl:
			switch n.Tok {
			case token.TYPE:
				b.typeDecl(n)
			case token.VAR:
				b.varDecl(n)
			}
		case *ast.AssignStmt:
			if n.Tok == token.ASSIGN {
				b.assignment(n)
			}
		}
	})

	var refs []symbols.Symbol
	for _, id := range slices.Sorted(maps.Keys(b.refs)) {
		if _, ok := b.declared[id]; ok {
			continue
		}
		refs = append(refs, b.refs[id])
	}

	c, err := symbols.NewCompilation(order, refs)
	if err != nil {
		return nil, err
	}

	return &Result{
		Compilation: c,
		positions:   b.positions,
	}, nil
}

type builder struct {
	pkg        Package
	units      map[string]*symbols.Unit
	interfaces []*types.TypeName
	declared   map[string]struct{}
	refs       map[string]symbols.Symbol
	positions  map[lintdiag.Location]token.Pos
}

// interfacesOf returns non-empty non-generic interfaces declared in the package scope.
func interfacesOf(pkg *types.Package) []*types.TypeName {
	var res []*types.TypeName
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}

		iface, ok := tn.Type().Underlying().(*types.Interface)
		if !ok || iface.Empty() {
			continue
		}
		if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue
		}

		res = append(res, tn)
	}

	return res
}

func (b *builder) typeDecl(decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		ts := spec.(*ast.TypeSpec)
		tn, ok := b.pkg.Info.Defs[ts.Name].(*types.TypeName)
		if !ok || tn.Parent() != b.pkg.Types.Scope() || tn.IsAlias() {
			continue
		}
		if types.IsInterface(tn.Type()) {
			continue
		}

		doc := ts.Doc
		if doc == nil && len(decl.Specs) == 1 {
			doc = decl.Doc
		}

		s := b.namedType(tn)
		s.Attributes = attributes(doc)
		s.Location = b.location(ts.Name)
		b.declare(s)

		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			continue
		}
		for _, field := range st.Fields.List {
			for _, name := range field.Names {
				b.field(s.ID+"."+name.Name, name, false)
			}
		}
	}
}

func (b *builder) varDecl(decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		for _, name := range spec.(*ast.ValueSpec).Names {
			if name.Name == "_" {
				continue
			}

			v, ok := b.pkg.Info.Defs[name].(*types.Var)
			if !ok || v.Parent() != b.pkg.Types.Scope() {
				continue
			}

			b.field(objectID(v), name, true)
		}
	}
}

func (b *builder) field(id string, name *ast.Ident, static bool) {
	v, ok := b.pkg.Info.Defs[name].(*types.Var)
	if !ok {
		return
	}

	s := symbols.Symbol{
		Kind:     symbols.KindField,
		ID:       id,
		Name:     name.Name,
		Type:     b.typeRef(v.Type()),
		Static:   static,
		Location: b.location(name),
	}
	b.declare(s)
	b.node(symbols.Node{
		Kind:     symbols.NodeFieldDeclaration,
		Symbol:   id,
		Static:   static,
		Location: s.Location,
	})
}

func (b *builder) assignment(stmt *ast.AssignStmt) {
	for _, lhs := range stmt.Lhs {
		var ident *ast.Ident
		switch e := ast.Unparen(lhs).(type) {
		case *ast.Ident:
			ident = e
		case *ast.SelectorExpr:
			ident = e.Sel
		default:
			continue
		}

		v, ok := b.pkg.Info.Uses[ident].(*types.Var)
		if !ok || v.Pkg() == nil || v.Parent() != v.Pkg().Scope() {
			continue
		}

		id := objectID(v)
		if v.Pkg() != b.pkg.Types {
			b.refs[id] = symbols.Symbol{
				Kind:   symbols.KindField,
				ID:     id,
				Name:   v.Name(),
				Type:   b.typeRef(v.Type()),
				Static: true,
			}
		}

		b.node(symbols.Node{
			Kind:     symbols.NodeAssignmentExpression,
			Symbol:   id,
			Location: b.location(lhs),
		})
	}
}

// typeRef returns an id of the named type t or a pointer to it refers to and makes sure
// there is a symbol for it.
func (b *builder) typeRef(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok || types.IsInterface(named) {
		return ""
	}

	tn := named.Origin().Obj()
	id := objectID(tn)
	if _, ok := b.refs[id]; !ok {
		b.refs[id] = b.namedType(tn)
	}

	return id
}

func (b *builder) namedType(tn *types.TypeName) symbols.Symbol {
	return symbols.Symbol{
		Kind:       symbols.KindNamedType,
		ID:         objectID(tn),
		Name:       tn.Name(),
		Interfaces: b.implemented(tn),
	}
}

func (b *builder) implemented(tn *types.TypeName) []string {
	t := tn.Type()
	if named, ok := t.(*types.Named); ok && named.TypeParams().Len() > 0 {
		return nil
	}

	candidates := b.interfaces
	if tn.Pkg() != nil && tn.Pkg() != b.pkg.Types {
		candidates = append(slices.Clone(candidates), interfacesOf(tn.Pkg())...)
	}

	var res []string
	ptr := types.NewPointer(t)
	for _, iface := range candidates {
		it := iface.Type().Underlying().(*types.Interface)
		if types.Implements(t, it) || types.Implements(ptr, it) {
			res = append(res, iface.Name())
		}
	}
	slices.Sort(res)

	return slices.Compact(res)
}

func (b *builder) declare(s symbols.Symbol) {
	b.declared[s.ID] = struct{}{}
	if u, ok := b.units[s.Location.File]; ok {
		u.Symbols = append(u.Symbols, s)
	}
}

func (b *builder) node(n symbols.Node) {
	if u, ok := b.units[n.Location.File]; ok {
		u.Nodes = append(u.Nodes, n)
	}
}

func (b *builder) location(n ast.Node) lintdiag.Location {
	start := b.pkg.Fset.PositionFor(n.Pos(), false)
	end := b.pkg.Fset.PositionFor(n.End(), false)
	loc := lintdiag.Location{
		File:  start.Filename,
		Start: lintdiag.Position{Line: start.Line, Column: start.Column},
		End:   lintdiag.Position{Line: end.Line, Column: end.Column},
	}
	b.positions[loc] = n.Pos()

	return loc
}

func attributes(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var res []string
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, AttributeDirective)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		res = append(res, strings.Fields(rest)...)
	}

	return res
}

func objectID(obj types.Object) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}

	return obj.Pkg().Path() + "." + obj.Name()
}
