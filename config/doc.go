/*
Package config loads optional YAML defaults for fwdig's command line flags.
Flags given explicitly on the command line always take precedence.

	workers: 4
	timeout: 3s
	extract: [xml, pattern]
	insecure: true
*/
package config
