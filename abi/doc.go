// Package abi defines the wire-level data model of the plugin calling
// convention: error codes, player and move identifiers, the tagged
// move-data representation, bounded output buffers, buffer sizing
// descriptors, feature-flag bitsets, instance handles, and the method
// tables a plugin exports.
//
// All safety-critical representation tricks of the protocol are confined
// to this package. In particular the move-data union discriminated by
// payload nullness is translated exactly once, in movedata.go; every
// other package operates on the safe tagged MoveData type.
//
// The package is intentionally free of dependencies so that the layers
// above it (game, frontend, host) can share it without cycles.
package abi
