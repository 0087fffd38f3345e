package dispatch

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

// Engine owns rule registrations and dispatches program elements to them.
// An engine can be reused for any number of runs, including concurrent ones.
type Engine struct {
	rules      []*ruleSetup
	workers    int
	logger     *zap.Logger
	ruleStates map[string]bool
}

// Option configures an [Engine].
type Option func(e *Engine)

// WithWorkers sets the number of callbacks running at once. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = max(n, 1)
	}
}

// WithLogger sets a logger for operational messages. Engines are silent by default.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRuleStates enables or disables rules by descriptor id, overriding
// their EnabledByDefault setting.
func WithRuleStates(states map[string]bool) Option {
	return func(e *Engine) {
		for id, enabled := range states {
			e.ruleStates[id] = enabled
		}
	}
}

// NewEngine initializes rules and validates their registrations.
func NewEngine(rules []Rule, opts ...Option) (*Engine, error) {
	e := &Engine{
		workers:    runtime.GOMAXPROCS(0),
		logger:     zap.NewNop(),
		ruleStates: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}

	known := make(map[string]string)
	for i, rule := range rules {
		if rule == nil {
			return nil, fmt.Errorf("%w: nil rule at %d", ErrConfiguration, i)
		}

		s := newRuleSetup(rule)
		if err := s.initialize(); err != nil {
			return nil, fmt.Errorf("%w: rule %s: %w", ErrConfiguration, rule.Name(), err)
		}
		for id := range s.descriptors {
			if owner, ok := known[id]; ok {
				return nil, fmt.Errorf("%w: descriptor %s is declared by both %s and %s", ErrConfiguration, id, owner, rule.Name())
			}
			known[id] = rule.Name()
		}

		e.rules = append(e.rules, s)
	}

	for id := range e.ruleStates {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: unknown rule id %s in rule states", ErrConfiguration, id)
		}
	}

	return e, nil
}

// SupportedDiagnostics returns descriptors of all rules, ordered by id.
func (e *Engine) SupportedDiagnostics() []*lintdiag.Descriptor {
	var out []*lintdiag.Descriptor
	for _, s := range e.rules {
		for _, d := range s.descriptors {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b *lintdiag.Descriptor) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out
}

// Enabled reports whether diagnostics of the given descriptor are kept.
func (e *Engine) Enabled(d *lintdiag.Descriptor) bool {
	if v, ok := e.ruleStates[d.ID]; ok {
		return v
	}
	return d.EnabledByDefault
}

// Result is an outcome of a run.
type Result struct {
	// Diagnostics are deduplicated and sorted by location, rule id and message.
	Diagnostics []lintdiag.Diagnostic

	// Faults are operational failures of individual callbacks.
	Faults []Fault

	// Cancelled is set when the run was cancelled. Diagnostics are partial then.
	Cancelled bool
}

// Run analyzes the compilation supplied by the host.
//
// The compilation start callbacks are called exactly once and before anything else. Then every
// named type symbol, field declaration, property declaration and assignment expression of every
// unit, generated ones included, is passed to the callbacks registered for its trigger, on a pool
// of workers and without any ordering guarantees.
//
// Only failures to obtain the compilation are returned as errors. Cancellation is not an error.
func (e *Engine) Run(ctx context.Context, host Host) (*Result, error) {
	if ctx.Err() != nil {
		return &Result{Cancelled: true}, nil
	}
	if host == nil {
		return nil, fmt.Errorf("%w: no host", ErrHostUnavailable)
	}

	comp, err := host.Compilation(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return &Result{Cancelled: true}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrHostUnavailable, err)
	}
	if comp == nil {
		return nil, fmt.Errorf("%w: host returned no compilation", ErrHostUnavailable)
	}

	r := &run{
		engine: e,
		ctx:    ctx,
		comp:   comp,
		sink:   NewSink(),
	}
	for _, s := range e.rules {
		r.rules = append(r.rules, newRuleRun(s))
	}

	e.logger.Debug(
		"analysis run started",
		zap.Int("units", len(comp.Units())),
		zap.Int("symbols", comp.Len()),
		zap.Int("rules", len(r.rules)),
		zap.Int("workers", e.workers),
	)

	r.start()
	r.dispatch()

	res := r.result()
	e.logger.Debug(
		"analysis run finished",
		zap.Int("diagnostics", len(res.Diagnostics)),
		zap.Int("faults", len(res.Faults)),
		zap.Bool("cancelled", res.Cancelled),
	)

	return res, nil
}

type run struct {
	engine *Engine
	ctx    context.Context
	comp   *symbols.Compilation
	rules  []*ruleRun
	sink   *Sink

	mu     sync.Mutex
	faults []Fault
}

// start calls compilation start actions sequentially.
func (r *run) start() {
	for _, rr := range r.rules {
		for _, action := range rr.setup.starts {
			if r.ctx.Err() != nil {
				return
			}

			sc := &StartContext{run: r, rule: rr}
			r.isolate(rr, TriggerCompilationStart, "", func() {
				action(sc)
			})
			sc.close()
		}
	}
}

type element struct {
	symbol symbols.View
	node   symbols.Node
}

func (r *run) dispatch() {
	var g errgroup.Group
	g.SetLimit(r.engine.workers)

	for _, u := range r.comp.Units() {
		for i := range u.Symbols {
			if u.Symbols[i].Kind != symbols.KindNamedType {
				continue
			}
			if !r.notify(&g, TriggerNamedType, element{symbol: symbols.ViewOf(&u.Symbols[i])}) {
				break
			}
		}

		for _, n := range u.Nodes {
			if !r.notify(&g, triggerOf(n.Kind), element{node: n}) {
				break
			}
		}
	}

	_ = g.Wait()
}

// notify schedules every action registered for the trigger. It returns false once the run is cancelled.
func (r *run) notify(g *errgroup.Group, kind TriggerKind, el element) bool {
	for _, rr := range r.rules {
		for _, action := range rr.actionsFor(kind) {
			if r.ctx.Err() != nil {
				return false
			}

			g.Go(func() error {
				r.invoke(rr, kind, el, action)
				return nil
			})
		}
	}

	return true
}

func (r *run) invoke(rr *ruleRun, kind TriggerKind, el element, action Action) {
	if r.ctx.Err() != nil {
		return
	}

	c := &Context{
		run:     r,
		rule:    rr,
		trigger: kind,
		symbol:  el.symbol,
		node:    el.node,
	}
	r.isolate(rr, kind, c.element(), func() {
		action(c)
	})
}

// isolate runs f turning a panic into a fault.
func (r *run) isolate(rr *ruleRun, kind TriggerKind, elem string, f func()) {
	defer func() {
		if p := recover(); p != nil {
			r.fault(Fault{
				Rule:    rr.setup.rule.Name(),
				Trigger: kind,
				Element: elem,
				Err:     fmt.Errorf("%w: %v", ErrCallbackFault, p),
			})
		}
	}()

	f()
}

func (r *run) report(rr *ruleRun, kind TriggerKind, elem string, d lintdiag.Diagnostic) {
	desc, ok := rr.setup.descriptors[d.RuleID()]
	if !ok || d.IsZero() {
		r.fault(Fault{
			Rule:    rr.setup.rule.Name(),
			Trigger: kind,
			Element: elem,
			Err:     fmt.Errorf("%w: %q", ErrUnknownRule, d.RuleID()),
		})
		return
	}
	if !r.engine.Enabled(desc) {
		return
	}

	r.sink.Report(d)
}

func (r *run) fault(f Fault) {
	r.engine.logger.Error(
		"rule callback failed",
		zap.String("rule", f.Rule),
		zap.Stringer("trigger", f.Trigger),
		zap.String("element", f.Element),
		zap.Error(f.Err),
	)

	r.mu.Lock()
	r.faults = append(r.faults, f)
	r.mu.Unlock()
}

func (r *run) result() *Result {
	r.mu.Lock()
	faults := slices.Clone(r.faults)
	r.mu.Unlock()

	slices.SortStableFunc(faults, func(a, b Fault) int {
		if c := cmp.Compare(a.Rule, b.Rule); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Trigger, b.Trigger); c != 0 {
			return c
		}
		return cmp.Compare(a.Element, b.Element)
	})

	return &Result{
		Diagnostics: r.sink.Diagnostics(),
		Faults:      faults,
		Cancelled:   r.ctx.Err() != nil,
	}
}
