// Package config loads Veil configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// scrub options.
package config
