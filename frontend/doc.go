// Package frontend implements the graphical side of the plugin bridge.
//
// An implementer writes a type satisfying Methods and calls BuildMethods
// to obtain the exported abi.FrontendMethods table. Each host-driven
// call receives a per-frame Context combining the host's display
// geometry, the outbound event queue, and a lazily created drawing
// surface that the bridge caches across frames and drops on window
// resize.
//
// Raw input events are translated into the frontend's local coordinate
// space before dispatch; lifecycle events arrive pre-decoded as event
// package variants.
package frontend
