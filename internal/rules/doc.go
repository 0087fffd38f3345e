// Package rules contains builtin demolint rules.
//
//	DEMO001  require-attribute   types implementing a marker interface must carry an attribute
//	DEMO002  static-disposable   static members must not hold disposable values
//
// Rule ids are stable, never renumber them.
package rules
