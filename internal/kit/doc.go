// Package kit defines the collaborator contracts the fathom CLI dispatches
// to, and the lazy registry that loads them.
//
// The CLI core orchestrates; it does not bundle, transpile, serve requests,
// or watch files. Those concerns live behind the interfaces declared here
// (DevServer, Builder, Packager, Syncer, Adapter) and are constructed
// on demand: a verb's collaborator is built only when that verb runs, so an
// unrelated collaborator's failure to initialize never blocks the others.
package kit
