// Package gohost maps type-checked Go packages onto the symbol model so rules written against
// named types, static members and assignments run over Go code.
package gohost
