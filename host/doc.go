// Package host drives a game method table from the host side of the
// bridge. Driver owns the opaque instance handle, sizes the
// caller-supplied output buffers from the bounds the game declared at
// create, and turns (error code, last-error message) pairs back into
// structured errors.
package host
