package symbols

import (
	"errors"
	"fmt"
)

// Compilation is the resolved symbol table of one analysis run.
type Compilation struct {
	units []*Unit
	index map[string]*Symbol
}

// NewCompilation builds the symbol table from units and referenced symbols.
//
// References are symbols declared outside of the analyzed units, like types from
// dependencies. They can be resolved but never trigger rule callbacks.
func NewCompilation(units []*Unit, references []Symbol) (*Compilation, error) {
	c := &Compilation{
		units: units,
		index: make(map[string]*Symbol),
	}

	add := func(s *Symbol, where string) error {
		if s.ID == "" {
			return fmt.Errorf("%s: symbol %q has no id", where, s.Name)
		}
		if _, ok := kindValueMap[s.Kind]; !ok {
			return fmt.Errorf("%s: symbol %s has invalid kind %d", where, s.ID, s.Kind)
		}
		if _, ok := c.index[s.ID]; ok {
			return fmt.Errorf("%s: duplicate symbol %s", where, s.ID)
		}
		c.index[s.ID] = s
		return nil
	}

	for _, u := range units {
		if u == nil {
			return nil, errors.New("nil unit")
		}
		for i := range u.Symbols {
			if err := add(&u.Symbols[i], "unit "+u.Name); err != nil {
				return nil, err
			}
		}
		for i, n := range u.Nodes {
			if !n.Valid() {
				return nil, fmt.Errorf("unit %s: node %d has invalid kind %d", u.Name, i, n.Kind)
			}
		}
	}

	for i := range references {
		if err := add(&references[i], "references"); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Units returns the analyzed units.
func (c *Compilation) Units() []*Unit {
	return c.units
}

// Lookup resolves a symbol by its ID. It returns an invalid view for unknown ids.
func (c *Compilation) Lookup(id string) View {
	if c == nil || id == "" {
		return View{}
	}
	return ViewOf(c.index[id])
}

// Len returns the number of known symbols, references included.
func (c *Compilation) Len() int {
	return len(c.index)
}
