// Package cli defines the Cobra command tree for the brainconf CLI. Each file
// in this package registers one command (show, get, set, list, validate,
// reset, version) with the root command. Commands open the store through
// openStore and only handle flag parsing, output formatting and confirmation
// prompts; the behavior lives in internal/store.
package cli
