package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/demolint/internal/rules"
)

func TestParse(t *testing.T) {
	disabled := false

	want := Config{
		Workers: 3,
		Options: rules.Options{
			InterfaceSuffix:         "Handler",
			RequiredAttribute:       "Route",
			DisposableInterfaceName: "IDisposable",
			CheckAssignments:        false,
		},
		Rules: map[string]RuleSetting{
			"DEMO001": {Enabled: &disabled},
		},
	}

	yamlSrc := `
workers: 3
options:
  interfaceSuffix: Handler
  requiredAttribute: Route
  checkAssignments: false
rules:
  DEMO001:
    enabled: false
`
	tomlSrc := `
workers = 3

[options]
interfaceSuffix = "Handler"
requiredAttribute = "Route"
checkAssignments = false

[rules.DEMO001]
enabled = false
`

	parsers := map[string]func() (Config, error){
		"yaml": func() (Config, error) { return ParseYAML([]byte(yamlSrc)) },
		"toml": func() (Config, error) { return ParseTOML([]byte(tomlSrc)) },
	}
	for name, parse := range parsers {
		t.Run(name, func(t *testing.T) {
			got, err := parse()
			if err != nil {
				t.Fatalf("parse: %s", err)
			}
			if !reflect.DeepEqual(want, got) {
				deepequal.SideBySide(t, "config", want, got)
			}
			if states := got.RuleStates(); len(states) != 1 || states["DEMO001"] {
				t.Errorf("unexpected rule states %v", states)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	got, err := ParseYAML(nil)
	if err != nil {
		t.Fatalf("parse empty yaml: %s", err)
	}
	if !reflect.DeepEqual(Default(), got) {
		deepequal.SideBySide(t, "config", Default(), got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte) (Config, error)
		src   string
	}{
		{name: "yaml unknown field", parse: ParseYAML, src: "worker: 1\n"},
		{name: "yaml negative workers", parse: ParseYAML, src: "workers: -1\n"},
		{name: "yaml empty option", parse: ParseYAML, src: "options:\n  interfaceSuffix: \"\"\n"},
		{name: "toml unknown key", parse: ParseTOML, src: "worker = 1\n"},
		{name: "toml syntax", parse: ParseTOML, src: "workers = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.parse([]byte(tt.src)); err == nil {
				t.Fatal("error expected")
			}
		})
	}
}

func TestLoadAndFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, ".demolint.toml")
	if err := os.WriteFile(cfgPath, []byte("workers = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if path != cfgPath {
		t.Fatalf("expected %s, got %s", cfgPath, path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if cfg.Workers != 2 || cfg.Options != rules.DefaultOptions() {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := Load(filepath.Join(root, "config.json")); err == nil {
		t.Fatal("missing file must fail")
	}
	jsonPath := filepath.Join(root, "config.json")
	if err := os.WriteFile(jsonPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(jsonPath); err == nil {
		t.Fatal("unsupported format must fail")
	}
}
