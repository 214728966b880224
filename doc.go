// Package plugbridge provides a safety layer for writing game-rules
// engine plugins and graphical frontend plugins against a fixed
// method-table calling convention.
//
// Implementers write idiomatic Go types satisfying high-level capability
// interfaces; the bridge handles everything the plugin protocol demands:
// opaque instance handles, function tables, bounded output buffers, the
// tagged move-data representation, and the per-instance error channel.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	plugbridge/          Root package with the architecture overview
//	├── abi/             Wire-level data model: codes, handles, method
//	│                    tables, move-data codec, bounded buffers
//	├── errors/          Structured error types for the bridge
//	├── game/            Rules-engine bridge: capability trait,
//	│                    trampolines, table builder
//	├── event/           Lifecycle event union encode/decode
//	├── frontend/        Frontend bridge: per-frame context, surface
//	│                    cache, input translation
//	├── plugin/          Plugin registration and version negotiation
//	├── host/            Synchronous host driver over a method table
//	├── wasmhost/        wazero-backed loader for wasm-compiled plugins
//	└── cmd/plugrun      CLI host with an interactive mode
//
// # Quick Start
//
// Implement game.Methods on your game type, build a table, and register
// it:
//
//	methods := game.BuildMethods[*MyGame](meta, create)
//	reg := plugin.NewRegistry()
//	reg.RegisterGame(methods)
//
// A host then drives the table through host.Driver:
//
//	d, err := host.NewDefault(methods)
//	if err != nil { ... }
//	defer d.Close()
package plugbridge
