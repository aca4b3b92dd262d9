// Package config loads runtime settings for the uikart CLI from, in order of
// increasing precedence: built-in defaults, a JSON config file (-c/-config),
// UIKART_* environment variables, and command-line flags.
package config
