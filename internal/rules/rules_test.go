package rules

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/lintdiag"
	"github.com/sirkon/demolint/internal/symbols"
)

type finding struct {
	Rule     string
	Location string
	Args     []string
}

func at(line int) lintdiag.Location {
	return lintdiag.Location{File: "Program.cs", Start: lintdiag.Position{Line: line, Column: 5}}
}

func analyze(t *testing.T, opts Options, units []*symbols.Unit, refs []symbols.Symbol, engineOpts ...dispatch.Option) []finding {
	t.Helper()

	c, err := symbols.NewCompilation(units, refs)
	if err != nil {
		t.Fatalf("build compilation: %s", err)
	}

	rules, err := Builtin(opts)
	if err != nil {
		t.Fatalf("builtin rules: %s", err)
	}
	e, err := dispatch.NewEngine(rules, engineOpts...)
	if err != nil {
		t.Fatalf("create engine: %s", err)
	}

	res, err := e.Run(context.Background(), dispatch.StaticHost(c))
	if err != nil {
		t.Fatalf("run: %s", err)
	}
	if len(res.Faults) != 0 {
		t.Fatalf("unexpected faults: %v", res.Faults)
	}

	var out []finding
	for _, d := range res.Diagnostics {
		out = append(out, finding{
			Rule:     d.RuleID(),
			Location: d.Location().String(),
			Args:     d.Args(),
		})
	}
	return out
}

func consoleApp() ([]*symbols.Unit, []symbols.Symbol) {
	units := []*symbols.Unit{{
		Name: "Program.cs",
		Symbols: []symbols.Symbol{
			{Kind: symbols.KindNamedType, ID: "ConsoleApp.Foo", Name: "Foo", Interfaces: []string{"IMyInterface"}, Location: at(3)},
			{Kind: symbols.KindNamedType, ID: "ConsoleApp.Bar", Name: "Bar", Interfaces: []string{"IMyInterface"}, Attributes: []string{"MyAttribute"}, Location: at(6)},
			{Kind: symbols.KindNamedType, ID: "ConsoleApp.Program", Name: "Program", Static: true, Location: at(9)},
			{Kind: symbols.KindField, ID: "ConsoleApp.Program.MyDisposable", Name: "MyDisposable", Type: "ConsoleApp.MyDisposable", Static: true, Location: at(11)},
			{Kind: symbols.KindProperty, ID: "ConsoleApp.Program.MyProp", Name: "MyProp", Type: "ConsoleApp.MyDisposable", Static: true, Location: at(13)},
			{Kind: symbols.KindProperty, ID: "ConsoleApp.Program.MyOtherProp", Name: "MyOtherProp", Type: "System.Object", Static: true, Location: at(15)},
		},
		Nodes: []symbols.Node{
			{Kind: symbols.NodeFieldDeclaration, Symbol: "ConsoleApp.Program.MyDisposable", Static: true, Location: at(11)},
			{Kind: symbols.NodePropertyDeclaration, Symbol: "ConsoleApp.Program.MyProp", Static: true, Location: at(13)},
			{Kind: symbols.NodePropertyDeclaration, Symbol: "ConsoleApp.Program.MyOtherProp", Static: true, Location: at(15)},
		},
	}}
	refs := []symbols.Symbol{
		{Kind: symbols.KindNamedType, ID: "ConsoleApp.MyDisposable", Name: "MyDisposable", Interfaces: []string{"IDisposable"}},
		{Kind: symbols.KindNamedType, ID: "System.Object", Name: "Object"},
	}

	return units, refs
}

func TestScenarios(t *testing.T) {
	units, refs := consoleApp()
	got := analyze(t, DefaultOptions(), units, refs)

	want := []finding{
		{Rule: "DEMO001", Location: "Program.cs:3:5", Args: []string{"Foo", "IMyInterface", "MyAttribute"}},
		{Rule: "DEMO002", Location: "Program.cs:11:5", Args: []string{"MyDisposable"}},
		{Rule: "DEMO002", Location: "Program.cs:13:5", Args: []string{"MyProp"}},
	}
	if !reflect.DeepEqual(want, got) {
		deepequal.SideBySide(t, "findings", want, got)
	}
}

func TestRequireAttribute_Property(t *testing.T) {
	tests := []struct {
		name       string
		interfaces []string
		attributes []string
		want       bool
	}{
		{name: "no interfaces", want: false},
		{name: "unrelated interface", interfaces: []string{"IComparable"}, want: false},
		{name: "suffix match without attribute", interfaces: []string{"IMyInterface"}, want: true},
		{name: "qualified suffix match", interfaces: []string{"Company.Domain.IMyInterface"}, want: true},
		{name: "suffix match with attribute", interfaces: []string{"IMyInterface"}, attributes: []string{"MyAttribute"}, want: false},
		{name: "suffix match with other attribute", interfaces: []string{"IMyInterface"}, attributes: []string{"Obsolete"}, want: true},
		{name: "several qualifying interfaces report once", interfaces: []string{"AIMyInterface", "BIMyInterface", "IMyInterface"}, want: true},
		{name: "prefix is not a suffix", interfaces: []string{"IMyInterfaceExtra"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := []*symbols.Unit{{
				Name: "T.cs",
				Symbols: []symbols.Symbol{{
					Kind:       symbols.KindNamedType,
					ID:         "N.T",
					Name:       "T",
					Interfaces: tt.interfaces,
					Attributes: tt.attributes,
					Location:   at(1),
				}},
			}}

			got := analyze(t, DefaultOptions(), units, nil)
			switch {
			case tt.want && len(got) != 1:
				t.Fatalf("expected exactly one diagnostic, got %d", len(got))
			case !tt.want && len(got) != 0:
				t.Fatalf("expected no diagnostics, got %v", got)
			case tt.want && got[0].Rule != RequireAttributeDescriptor.ID:
				t.Fatalf("unexpected rule %s", got[0].Rule)
			}
		})
	}
}

func TestStaticDisposable_Property(t *testing.T) {
	types := []symbols.Symbol{
		{Kind: symbols.KindNamedType, ID: "N.Disposable", Name: "Disposable", Interfaces: []string{"IDisposable"}},
		{Kind: symbols.KindNamedType, ID: "N.Plain", Name: "Plain", Interfaces: []string{"IComparable"}},
	}

	for _, kind := range []symbols.NodeKind{symbols.NodeFieldDeclaration, symbols.NodePropertyDeclaration} {
		for _, static := range []bool{false, true} {
			for _, typ := range []string{"N.Disposable", "N.Plain", "N.Unknown", ""} {
				name := fmt.Sprintf("%s static=%t type=%q", kind, static, typ)
				want := static && typ == "N.Disposable"

				t.Run(name, func(t *testing.T) {
					symKind := symbols.KindField
					if kind == symbols.NodePropertyDeclaration {
						symKind = symbols.KindProperty
					}

					units := []*symbols.Unit{{
						Name: "M.cs",
						Symbols: []symbols.Symbol{
							{Kind: symKind, ID: "N.Holder.M", Name: "M", Type: typ, Static: static, Location: at(2)},
						},
						Nodes: []symbols.Node{
							{Kind: kind, Symbol: "N.Holder.M", Static: static, Location: at(2)},
						},
					}}

					got := analyze(t, DefaultOptions(), units, types)
					if want {
						expected := []finding{{Rule: StaticDisposableID, Location: at(2).String(), Args: []string{"M"}}}
						if !reflect.DeepEqual(expected, got) {
							deepequal.SideBySide(t, "findings", expected, got)
						}
						return
					}
					if len(got) != 0 {
						t.Fatalf("expected no diagnostics, got %v", got)
					}
				})
			}
		}
	}
}

func TestStaticDisposable_Assignments(t *testing.T) {
	units := []*symbols.Unit{{
		Name: "Cache.cs",
		Symbols: []symbols.Symbol{
			{Kind: symbols.KindField, ID: "N.Cache.shared", Name: "shared", Type: "N.Stream", Static: true, Location: at(3)},
			{Kind: symbols.KindField, ID: "N.Cache.local", Name: "local", Type: "N.Stream", Location: at(4)},
		},
		Nodes: []symbols.Node{
			// Declared without initializer, assigned later.
			{Kind: symbols.NodeFieldDeclaration, Symbol: "N.Cache.shared", Static: true, Location: at(3)},
			{Kind: symbols.NodeFieldDeclaration, Symbol: "N.Cache.local", Location: at(4)},
			{Kind: symbols.NodeAssignmentExpression, Symbol: "N.Cache.shared", Location: at(8)},
			{Kind: symbols.NodeAssignmentExpression, Symbol: "N.Cache.local", Location: at(9)},
			{Kind: symbols.NodeAssignmentExpression, Location: at(10)},
		},
	}}
	refs := []symbols.Symbol{
		{Kind: symbols.KindNamedType, ID: "N.Stream", Name: "Stream", Interfaces: []string{"IDisposable", "IAsyncDisposable"}},
	}

	t.Run("enabled", func(t *testing.T) {
		got := analyze(t, DefaultOptions(), units, refs)
		want := []finding{
			{Rule: StaticDisposableID, Location: at(3).String(), Args: []string{"shared"}},
			{Rule: StaticDisposableID, Location: at(8).String(), Args: []string{"shared"}},
		}
		if !reflect.DeepEqual(want, got) {
			deepequal.SideBySide(t, "findings", want, got)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.CheckAssignments = false
		got := analyze(t, opts, units, refs)
		want := []finding{
			{Rule: StaticDisposableID, Location: at(3).String(), Args: []string{"shared"}},
		}
		if !reflect.DeepEqual(want, got) {
			deepequal.SideBySide(t, "findings", want, got)
		}
	})
}

func TestCustomOptions(t *testing.T) {
	opts := Options{
		InterfaceSuffix:         "Handler",
		RequiredAttribute:       "Route",
		DisposableInterfaceName: "Closer",
	}

	units := []*symbols.Unit{{
		Name: "handlers.go",
		Symbols: []symbols.Symbol{
			{Kind: symbols.KindNamedType, ID: "app.Index", Name: "Index", Interfaces: []string{"http.Handler"}, Location: at(1)},
			{Kind: symbols.KindNamedType, ID: "app.Tagged", Name: "Tagged", Interfaces: []string{"http.Handler"}, Attributes: []string{"Route"}, Location: at(2)},
			{Kind: symbols.KindNamedType, ID: "app.Legacy", Name: "Legacy", Interfaces: []string{"IMyInterface"}, Location: at(3)},
			{Kind: symbols.KindField, ID: "app.db", Name: "db", Type: "sql.DB", Static: true, Location: at(4)},
		},
		Nodes: []symbols.Node{
			{Kind: symbols.NodeFieldDeclaration, Symbol: "app.db", Static: true, Location: at(4)},
		},
	}}
	refs := []symbols.Symbol{
		{Kind: symbols.KindNamedType, ID: "sql.DB", Name: "DB", Interfaces: []string{"Closer"}},
	}

	got := analyze(t, opts, units, refs)
	want := []finding{
		{Rule: "DEMO001", Location: at(1).String(), Args: []string{"Index", "Handler", "Route"}},
		{Rule: "DEMO002", Location: at(4).String(), Args: []string{"db"}},
	}
	if !reflect.DeepEqual(want, got) {
		deepequal.SideBySide(t, "findings", want, got)
	}

	rules, err := Builtin(opts)
	if err != nil {
		t.Fatal(err)
	}
	desc := Descriptors(rules)[1]
	if msg, _ := desc.Format("db"); msg != "db, which implements Closer, is assigned to a static member" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestIdempotenceAndWorkers(t *testing.T) {
	units, refs := consoleApp()

	// Enlarge the input so workers actually overlap.
	for i := range 50 {
		units = append(units, &symbols.Unit{
			Name: fmt.Sprintf("Gen%d.cs", i),
			Symbols: []symbols.Symbol{
				{Kind: symbols.KindNamedType, ID: fmt.Sprintf("Gen.T%d", i), Name: fmt.Sprintf("T%d", i), Interfaces: []string{"IMyInterface"}, Location: at(i + 100)},
				{Kind: symbols.KindField, ID: fmt.Sprintf("Gen.T%d.f", i), Name: "f", Type: "ConsoleApp.MyDisposable", Static: i%2 == 0, Location: at(i + 200)},
			},
			Nodes: []symbols.Node{
				{Kind: symbols.NodeFieldDeclaration, Symbol: fmt.Sprintf("Gen.T%d.f", i), Static: i%2 == 0, Location: at(i + 200)},
			},
		})
	}

	single := analyze(t, DefaultOptions(), units, refs, dispatch.WithWorkers(1))
	if len(single) != 3+50+25 {
		t.Fatalf("unexpected number of diagnostics %d", len(single))
	}

	for _, workers := range []int{1, 2, 8} {
		got := analyze(t, DefaultOptions(), units, refs, dispatch.WithWorkers(workers))
		if !reflect.DeepEqual(single, got) {
			deepequal.SideBySide(t, fmt.Sprintf("workers=%d", workers), single, got)
		}
	}
}

func TestCancelledRun(t *testing.T) {
	units, refs := consoleApp()
	c, err := symbols.NewCompilation(units, refs)
	if err != nil {
		t.Fatal(err)
	}
	rules, err := Builtin(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	e, err := dispatch.NewEngine(rules)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.Run(ctx, dispatch.StaticHost(c))
	if err != nil {
		t.Fatalf("cancellation is not a fault: %s", err)
	}
	if len(res.Diagnostics) != 0 || len(res.Faults) != 0 {
		t.Fatalf("expected an empty result, got %+v", res)
	}
}

func TestBuiltinValidation(t *testing.T) {
	if _, err := Builtin(Options{}); err == nil {
		t.Fatal("empty options must be rejected")
	}
}
