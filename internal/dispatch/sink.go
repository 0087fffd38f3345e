package dispatch

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/demolint/internal/lintdiag"
)

// Sink collects diagnostics reported by rule callbacks. It is safe for concurrent use and
// keeps a single copy of identical diagnostics: same rule, location and arguments.
type Sink struct {
	mu    sync.Mutex
	seen  *rbtree.Tree[*sinkEntry]
	items []lintdiag.Diagnostic
}

// NewSink creates an empty sink. The zero value is ready to use as well.
func NewSink() *Sink {
	return &Sink{seen: rbtree.New[*sinkEntry]()}
}

// Report adds a diagnostic unless an identical one is already there.
func (s *Sink) Report(d lintdiag.Diagnostic) {
	e := &sinkEntry{key: sinkKey(d)}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen == nil {
		s.seen = rbtree.New[*sinkEntry]()
	}
	if s.seen.InsertReturn(e) != e {
		return
	}
	s.items = append(s.items, d)
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Diagnostics returns a sorted snapshot of collected diagnostics.
func (s *Sink) Diagnostics() []lintdiag.Diagnostic {
	s.mu.Lock()
	out := slices.Clone(s.items)
	s.mu.Unlock()

	slices.SortFunc(out, lintdiag.Diagnostic.Compare)
	return out
}

type sinkEntry struct {
	key string
}

// Cmp orders entries by their identity key.
func (e *sinkEntry) Cmp(other *sinkEntry) int {
	return strings.Compare(e.key, other.key)
}

func sinkKey(d lintdiag.Diagnostic) string {
	loc := d.Location()

	var buf strings.Builder
	buf.WriteString(d.RuleID())
	buf.WriteByte(0)
	buf.WriteString(loc.File)
	for _, v := range []int{loc.Start.Line, loc.Start.Column, loc.End.Line, loc.End.Column} {
		buf.WriteByte(0)
		buf.WriteString(strconv.Itoa(v))
	}
	for _, arg := range d.Args() {
		buf.WriteByte(0)
		buf.WriteString(arg)
	}

	return buf.String()
}
