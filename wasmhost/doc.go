// Package wasmhost loads game plugins compiled to WebAssembly and
// adapts them into the same method tables in-process plugins export,
// so the host drives both kinds through one code path.
//
// A guest module exports a small C-shaped surface:
//
//	pb_alloc(size) -> ptr            guest-side allocation for arguments
//	pb_free(ptr, size)
//	pb_game_api_version() -> u64
//	pb_describe() -> packed          newline-separated metadata string
//	pb_last_error() -> packed        message for the most recent failure
//	pb_result() -> packed            output bytes of the most recent call
//	pb_create(kind, ptr, len) -> i64 instance id, or negative error code
//	pb_destroy(id)
//	pb_clone(id) -> i64
//	...one export per table entry, returning an error code
//
// "packed" is ptr<<32|len into guest memory; the view is only valid
// until the next call into the module. Variable-size arguments (states,
// move payloads) are copied into guest memory through pb_alloc and
// released with pb_free after the call.
//
// The wire subset carried across the wasm boundary covers the core
// operations plus the options, print and big-moves features; feature
// bits a guest declares beyond that subset are masked off at load.
package wasmhost
