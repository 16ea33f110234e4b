// Package veil provides the command-line interface for the Veil tool.
// It configures subcommands (scrub, rules, completion), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/veilhq/veil/cmd/veil"
//	func main() { veil.Execute() }
package veil
