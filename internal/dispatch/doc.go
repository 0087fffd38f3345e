// Package dispatch implements the trigger dispatch engine.
//
// Rules subscribe callbacks to trigger kinds during initialization:
//
//   - compilation start, called exactly once per run before anything else;
//   - named type symbols;
//   - field declarations, property declarations and assignment expressions.
//
// For every unit of a compilation the engine notifies each matching callback once per element,
// handing it a fresh [Context] scoped to that element. Callbacks run on a pool of workers with
// no ordering guarantees, so they must be pure functions of their context: the only shared
// mutation point is the diagnostic [Sink]. Units produced by code generators are analyzed
// like any other unit.
//
// A panicking callback never aborts a run. It is recorded as a [Fault], an operational
// failure reported separately from diagnostics. Failure to obtain the compilation from the
// [Host] is fatal and returned as [ErrHostUnavailable].
//
// Cancellation is cooperative: callbacks poll [Context.Cancelled] and return early. A callback
// that ignores it can stall the run, the engine has no other timeout mechanism.
package dispatch
