// Package probe implements the observation surface of the qsapp target.
//
// The target signals progress to a host-side observer through named
// execution markers rather than return values or I/O. A Registry fans
// markers out to watcher channels and an optional Trace recorder; the
// target never blocks on a slow observer. The package also carries the
// test-mode entry hook called once before the main loop, and the Keep
// primitive that pins a local value so it stays inspectable at a marker
// point.
package probe
