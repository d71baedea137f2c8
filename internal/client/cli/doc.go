// Package cli implements the interactive PasteFlow command line: a small
// REPL over the session manager, the authorized request gateway, and the
// paste access model. Rendering and action gating decisions are taken from
// the access model; the REPL itself holds no authorization logic.
package cli
