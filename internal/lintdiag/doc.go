// Package lintdiag describes rules and the diagnostics they report.
//
// A [Descriptor] is the immutable identity of a check: id, title, message template, category,
// severity and documentation. A [Diagnostic] is one reported violation that references its
// descriptor, a source [Location] and the arguments substituted into the message template.
//
// Message templates use positional placeholders:
//
//	{0} is missing {2}. Methods in types implementing {1} should be decorated with {2}.
//
// Creating a diagnostic with fewer arguments than the template refers to is a programming
// error of the rule and fails with [ErrArgumentCountMismatch].
package lintdiag
