// Package demolint provides the demolint analyzer: a requirement for types implementing
// marker interfaces to carry an attribute and a check for disposable values kept in
// package level variables.
package demolint

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/demolint/internal/config"
	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/gohost"
	"github.com/sirkon/demolint/internal/rules"
)

const doc = `demolint checks marker interface implementations and static disposable values

Types implementing an interface whose name ends with the configured suffix must be marked with
the required attribute using a "//demolint:attribute <Name>" directive. Package level variables
holding values of types implementing the disposable interface are reported on declaration and
on assignment.`

// Analyzer is the main entry point for the linter
var Analyzer = &analysis.Analyzer{
	Name:     "demolint",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	configPath string
	workers    int
)

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "path to a YAML or TOML configuration file")
	Analyzer.Flags.IntVar(&workers, "workers", 0, "number of concurrent rule callbacks, zero means configured or GOMAXPROCS")
}

// NewEngine creates an engine running builtin rules configured with cfg.
func NewEngine(cfg config.Config, opts ...dispatch.Option) (*dispatch.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	rs, err := rules.Builtin(cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("setup builtin rules: %w", err)
	}

	all := []dispatch.Option{dispatch.WithRuleStates(cfg.RuleStates())}
	if cfg.Workers > 0 {
		all = append(all, dispatch.WithWorkers(cfg.Workers))
	}
	all = append(all, opts...)

	return dispatch.NewEngine(rs, all...)
}

func run(pass *analysis.Pass) (any, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}
	if workers > 0 {
		cfg.Workers = workers
	}

	engine, err := NewEngine(cfg, dispatch.WithLogger(zap.NewNop()))
	if err != nil {
		return nil, err
	}

	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	built, err := gohost.Build(gohost.Package{
		Fset:      pass.Fset,
		Files:     pass.Files,
		Types:     pass.Pkg,
		Info:      pass.TypesInfo,
		Inspector: pector,
	})
	if err != nil {
		return nil, fmt.Errorf("build compilation: %w", err)
	}

	res, err := engine.Run(context.Background(), dispatch.StaticHost(built.Compilation))
	if err != nil {
		return nil, err
	}

	for _, d := range res.Diagnostics {
		pass.Report(analysis.Diagnostic{
			Pos:      built.Pos(d.Location()),
			Category: d.Category(),
			Message:  d.RuleID() + ": " + d.Message(),
		})
	}

	if len(res.Faults) > 0 {
		errs := make([]error, 0, len(res.Faults))
		for _, f := range res.Faults {
			errs = append(errs, f)
		}
		return nil, fmt.Errorf("rule faults: %w", errors.Join(errs...))
	}

	return nil, nil
}
