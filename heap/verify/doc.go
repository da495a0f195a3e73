// Package verify checks heap invariants. Tests call AllInvariants after every
// mutating step; the trace runner and elctl call it on demand.
//
// The layout checks decode the arena directly instead of going through the
// heap's navigation helpers, so a bug in navigation cannot hide itself.
package verify
