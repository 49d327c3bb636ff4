// Package cli provides the interactive StorePulse console.
//
// It wires configuration, the local session store, the backend client and
// the views, and exposes them as a REPL plus a set of one-shot cobra
// commands. Every command goes through the router first: without a valid
// session the console lands on the login notice instead of a view.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, runREPL and NewRootCommand for details.
package cli
