package dispatch

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirkon/demolint/internal/lintdiag"
)

// ruleSetup is a rule with everything it registered during Initialize.
type ruleSetup struct {
	rule        Rule
	descriptors map[string]*lintdiag.Descriptor

	starts  []StartAction
	actions []Registration

	errs []error
}

var _ Registrar = (*ruleSetup)(nil)

func newRuleSetup(rule Rule) *ruleSetup {
	return &ruleSetup{
		rule:        rule,
		descriptors: make(map[string]*lintdiag.Descriptor),
	}
}

func (s *ruleSetup) RegisterCompilationStart(action StartAction) {
	if action == nil {
		s.errs = append(s.errs, errors.New("nil compilation start action"))
		return
	}
	s.starts = append(s.starts, action)
}

func (s *ruleSetup) Register(kind TriggerKind, action Action) {
	switch {
	case kind == TriggerCompilationStart:
		s.errs = append(s.errs, errors.New("compilation start must be registered with RegisterCompilationStart"))
	case !kind.IsElement():
		s.errs = append(s.errs, fmt.Errorf("unknown trigger kind %s", kind))
	case action == nil:
		s.errs = append(s.errs, fmt.Errorf("nil action for %s", kind))
	default:
		s.actions = append(s.actions, Registration{Kind: kind, Action: action})
	}
}

// initialize collects descriptors and registrations of the rule. A panicking Initialize
// is a configuration error.
func (s *ruleSetup) initialize() (err error) {
	for _, d := range s.rule.SupportedDiagnostics() {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, ok := s.descriptors[d.ID]; ok {
			return fmt.Errorf("duplicate descriptor %s", d.ID)
		}
		s.descriptors[d.ID] = d
	}
	if len(s.descriptors) == 0 {
		return errors.New("no supported diagnostics")
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("initialize panicked: %v", p)
		}
	}()
	s.rule.Initialize(s)

	return errors.Join(s.errs...)
}

// ruleRun is the per-run state of a rule: static registrations plus the compilation-scoped ones.
type ruleRun struct {
	setup *ruleSetup

	mu     sync.Mutex
	byKind map[TriggerKind][]Action
}

func newRuleRun(s *ruleSetup) *ruleRun {
	r := &ruleRun{
		setup:  s,
		byKind: make(map[TriggerKind][]Action),
	}
	for _, reg := range s.actions {
		r.byKind[reg.Kind] = append(r.byKind[reg.Kind], reg.Action)
	}

	return r
}

// addFrom appends a compilation-scoped action unless sc is already closed.
func (r *ruleRun) addFrom(sc *StartContext, kind TriggerKind, action Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sc.closed {
		return false
	}
	r.byKind[kind] = append(r.byKind[kind], action)

	return true
}

func (r *ruleRun) actionsFor(kind TriggerKind) []Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.byKind[kind])
}
