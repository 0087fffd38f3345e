// Package symbols models the resolved program a host hands to the engine: symbols of named
// types, fields and properties, the syntax elements rules subscribe to, and the compilation-wide
// symbol table that resolves declared types.
package symbols
