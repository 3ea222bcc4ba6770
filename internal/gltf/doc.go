// Package gltf builds and executes gltf-transform commands for the two
// compression stages and exposes them as a [CLI] compressor.
//
// Every invocation has the same shape:
//
//	<tool> <subcommand> <src> <dst> [extra args]
//
// Success is exit status 0. stderr is always captured; it becomes the
// failure diagnostic when the process fails and a warning when it does not.
package gltf
