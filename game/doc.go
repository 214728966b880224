// Package game implements the rules-engine side of the plugin bridge.
//
// An implementer writes a type satisfying Methods (plus whichever
// optional capability interfaces its feature flags declare) and calls
// BuildMethods to obtain the exported abi.GameMethods table. The
// trampolines in this package handle the instance lifecycle protocol,
// the per-instance auxiliary state, the output-buffer protocol and the
// error channel; the implementer only ever sees safe Go values.
//
// Every table entry follows the same pattern: decode wire arguments,
// invoke the capability method against the user object stored in the
// handle's first extension slot, write results through the output-buffer
// protocol, and translate failures into the error-code convention with
// the message stored in auxiliary state.
package game
