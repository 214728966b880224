// Package plugin implements the registration side of the calling
// convention: the fixed entry points a plugin module exports (init,
// enumerate-and-fill, ABI version report, cleanup) and the host-side
// registry that loads plugins, negotiates versions, and hands out
// method tables by name.
package plugin
