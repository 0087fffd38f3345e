package rules

import (
	"errors"
)

// Default rule settings.
const (
	DefaultInterfaceSuffix         = "IMyInterface"
	DefaultRequiredAttribute       = "MyAttribute"
	DefaultDisposableInterfaceName = "IDisposable"
)

// Options is the configuration surface of builtin rules.
type Options struct {
	// InterfaceSuffix identifies interfaces whose implementers must carry RequiredAttribute.
	InterfaceSuffix string `yaml:"interfaceSuffix" toml:"interfaceSuffix"`

	// RequiredAttribute is the name of the mandatory attribute.
	RequiredAttribute string `yaml:"requiredAttribute" toml:"requiredAttribute"`

	// DisposableInterfaceName is the interface denoting values holding a resource
	// that must be released explicitly.
	DisposableInterfaceName string `yaml:"disposableInterfaceName" toml:"disposableInterfaceName"`

	// CheckAssignments enables detection of disposable values assigned to static
	// members after their declaration.
	CheckAssignments bool `yaml:"checkAssignments" toml:"checkAssignments"`
}

// DefaultOptions returns options with the default settings.
func DefaultOptions() Options {
	return Options{
		InterfaceSuffix:         DefaultInterfaceSuffix,
		RequiredAttribute:       DefaultRequiredAttribute,
		DisposableInterfaceName: DefaultDisposableInterfaceName,
		CheckAssignments:        true,
	}
}

// Validate checks every name is set.
func (o Options) Validate() error {
	var errs []error
	if o.InterfaceSuffix == "" {
		errs = append(errs, errors.New("interfaceSuffix must not be empty"))
	}
	if o.RequiredAttribute == "" {
		errs = append(errs, errors.New("requiredAttribute must not be empty"))
	}
	if o.DisposableInterfaceName == "" {
		errs = append(errs, errors.New("disposableInterfaceName must not be empty"))
	}

	return errors.Join(errs...)
}
