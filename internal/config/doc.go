// Package config resolves the CLI's own runtime options: where the shared
// configuration document lives and which log level to use. Values come from
// command-line flags, then BRAINCONF_* environment variables, then defaults
// under ~/.teambrain.
package config
