// Package unitfile reads pre-resolved compilation units described in YAML.
//
// A unit file looks like this:
//
//	references:
//	  - id: ConsoleApp.MyDisposable
//	    kind: named-type
//	    interfaces: [IDisposable]
//	units:
//	  - name: Program.cs
//	    symbols:
//	      - id: ConsoleApp.Program.MyDisposable
//	        kind: field
//	        type: ConsoleApp.MyDisposable
//	        static: true
//	        location: {line: 5, column: 42}
//	    syntax:
//	      - kind: field-declaration
//	        symbol: ConsoleApp.Program.MyDisposable
//	        static: true
//	        location: {line: 5, column: 5}
//
// Symbol names default to the last dot separated segment of their ids and locations
// without a file default to the unit name.
package unitfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

type document struct {
	References []symbolEntry `yaml:"references"`
	Units      []unitEntry   `yaml:"units"`
}

type unitEntry struct {
	Name      string        `yaml:"name"`
	Generated bool          `yaml:"generated"`
	Symbols   []symbolEntry `yaml:"symbols"`
	Syntax    []nodeEntry   `yaml:"syntax"`
}

type symbolEntry struct {
	ID         string        `yaml:"id"`
	Kind       string        `yaml:"kind"`
	Name       string        `yaml:"name"`
	Type       string        `yaml:"type"`
	Interfaces []string      `yaml:"interfaces"`
	Attributes []string      `yaml:"attributes"`
	Static     bool          `yaml:"static"`
	Location   locationEntry `yaml:"location"`
}

type nodeEntry struct {
	Kind     string        `yaml:"kind"`
	Symbol   string        `yaml:"symbol"`
	Static   bool          `yaml:"static"`
	Location locationEntry `yaml:"location"`
}

type locationEntry struct {
	File      string `yaml:"file"`
	Line      int    `yaml:"line"`
	Column    int    `yaml:"column"`
	EndLine   int    `yaml:"endLine"`
	EndColumn int    `yaml:"endColumn"`
}

// Set is a collection of units and referenced symbols read from unit files.
type Set struct {
	units []*symbols.Unit
	refs  []symbols.Symbol
}

// Units returns units of the set.
func (s *Set) Units() []*symbols.Unit { return s.units }

// References returns referenced symbols of the set.
func (s *Set) References() []symbols.Symbol { return s.refs }

// Merge appends units and references of other set.
func (s *Set) Merge(other *Set) {
	s.units = append(s.units, other.units...)
	s.refs = append(s.refs, other.refs...)
}

// Compilation builds the symbol table out of the set.
func (s *Set) Compilation() (*symbols.Compilation, error) {
	return symbols.NewCompilation(s.units, s.refs)
}

// Parse decodes a unit file. The name is only used in error messages.
func Parse(name string, data []byte) (*Set, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	var set Set
	for i, ref := range doc.References {
		s, err := ref.symbol("")
		if err != nil {
			return nil, fmt.Errorf("%s: reference %d: %w", name, i, err)
		}
		set.refs = append(set.refs, s)
	}

	for i, ue := range doc.Units {
		u, err := ue.unit()
		if err != nil {
			return nil, fmt.Errorf("%s: unit %d: %w", name, i, err)
		}
		set.units = append(set.units, u)
	}

	return &set, nil
}

// Load reads and merges unit files.
func Load(paths ...string) (*Set, error) {
	var set Set
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read unit file: %w", err)
		}

		s, err := Parse(path, data)
		if err != nil {
			return nil, err
		}
		set.Merge(s)
	}

	return &set, nil
}

// Host supplies compilations read from unit files.
type Host struct {
	Paths []string
}

func (h Host) Compilation(ctx context.Context) (*symbols.Compilation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(h.Paths) == 0 {
		return nil, errors.New("no unit files given")
	}

	set, err := Load(h.Paths...)
	if err != nil {
		return nil, err
	}

	c, err := set.Compilation()
	if err != nil {
		return nil, fmt.Errorf("build compilation: %w", err)
	}

	return c, nil
}

func (e unitEntry) unit() (*symbols.Unit, error) {
	if e.Name == "" {
		return nil, errors.New("unit has no name")
	}

	u := &symbols.Unit{
		Name:      e.Name,
		Generated: e.Generated,
	}
	for i, se := range e.Symbols {
		s, err := se.symbol(e.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: symbol %d: %w", e.Name, i, err)
		}
		u.Symbols = append(u.Symbols, s)
	}
	for i, ne := range e.Syntax {
		n, err := ne.node(e.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: syntax %d: %w", e.Name, i, err)
		}
		u.Nodes = append(u.Nodes, n)
	}

	return u, nil
}

func (e symbolEntry) symbol(file string) (symbols.Symbol, error) {
	var kind symbols.Kind
	if err := kind.UnmarshalText([]byte(e.Kind)); err != nil {
		return symbols.Symbol{}, err
	}

	id, name := e.ID, e.Name
	switch {
	case id == "" && name == "":
		return symbols.Symbol{}, errors.New("symbol has neither id nor name")
	case id == "":
		id = name
	case name == "":
		name = id[strings.LastIndexByte(id, '.')+1:]
	}

	return symbols.Symbol{
		Kind:       kind,
		ID:         id,
		Name:       name,
		Type:       e.Type,
		Interfaces: e.Interfaces,
		Attributes: e.Attributes,
		Static:     e.Static,
		Location:   e.Location.location(file),
	}, nil
}

func (e nodeEntry) node(file string) (symbols.Node, error) {
	var kind symbols.NodeKind
	if err := kind.UnmarshalText([]byte(e.Kind)); err != nil {
		return symbols.Node{}, err
	}

	return symbols.Node{
		Kind:     kind,
		Symbol:   e.Symbol,
		Static:   e.Static,
		Location: e.Location.location(file),
	}, nil
}

func (e locationEntry) location(file string) lintdiag.Location {
	if e.File != "" {
		file = e.File
	}

	return lintdiag.Location{
		File:  file,
		Start: lintdiag.Position{Line: e.Line, Column: e.Column},
		End:   lintdiag.Position{Line: e.EndLine, Column: e.EndColumn},
	}
}
