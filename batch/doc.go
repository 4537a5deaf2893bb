// SPDX-License-Identifier: MIT

// Package batch evaluates flowslice queries across many procedures in
// parallel (spec.md §5: "Multiple procedures may be analyzed in
// parallel by top-level drivers ... each per-procedure context is
// isolated"). Each procedure's Aliases, PlaceInfo, ControlDependencies,
// and flow cache entry are independent values, so no synchronization is
// needed between procedures beyond the shared flowcache.Cache's own
// locking; this package's only job is to fan requests out over a
// bounded worker pool and fan per-procedure Fatal errors back in
// without one bad procedure aborting the rest.
package batch
