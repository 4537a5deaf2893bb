// SPDX-License-Identifier: MIT

// Package flowcache amortizes repeated ComputeFlow queries against the
// same procedure, keyed by procedure identity plus evaluation mode
// (spec.md §3's lifecycle note, §5's shared-resources model).
//
// Entries are owned by a Cache value, not a process-wide global: spec.md
// §5 describes the cache as "process-wide state owned by a thread-local
// container", but this module follows §9's design note instead ("specify
// [ambient configuration] as a value threaded into computeFlow ... not
// as process-wide mutable state") and makes the cache an explicit value
// a caller constructs once and shares, guarded by its own mutex rather
// than goroutine-local storage. A Cache is safe for concurrent use by
// multiple goroutines, matching core.Graph's dual-mutex discipline of
// guarding independent state behind its own lock.
package flowcache
