// SPDX-License-Identifier: MIT
package flowcache

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/ir"
)

// Key identifies one cache entry: a procedure plus the evaluation mode
// it was analyzed under (spec.md §3, §6). EvaluationMode is a plain
// comparable value (every field is a small enum), so Key is usable
// directly as a map key with no derived hashing.
type Key struct {
	Procedure string
	Mode      flowanalysis.EvaluationMode
}

// entry holds one cached Result plus the error from the Run that
// produced it, since a Fatal analysis failure (spec.md §7) is itself
// worth remembering rather than re-attempting on every query.
type entry struct {
	result *flowanalysis.Result
	err    error
}

// Cache amortizes flowanalysis.Run across repeated queries against the
// same procedure and mode. The zero Cache is not usable; construct one
// with New. A *Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	logger  hclog.Logger
}

// New constructs an empty Cache. A nil logger is replaced with
// hclog.NewNullLogger(), matching this module's house rule that no
// ambient/global logger ever stands in for an explicit one.
func New(logger hclog.Logger) *Cache {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Cache{entries: make(map[Key]*entry), logger: logger}
}

// Get returns the cached Result for (body.Name, mode), computing and
// storing it via flowanalysis.Run(body, opts...) on a miss. opts must
// encode the same mode passed here (batch.Evaluate builds them from the
// same Request.Mode); Get does not itself inspect opts beyond what
// flowanalysis.Run needs.
//
// Once inserted, an entry is immutable for the Cache's lifetime per
// spec.md §5 ("the cache entry, once inserted, is immutable for its
// lifetime"); Get never recomputes an existing Key.
func (c *Cache) Get(body *ir.Body, mode flowanalysis.EvaluationMode, opts ...flowanalysis.Option) (*flowanalysis.Result, error) {
	key := Key{Procedure: body.Name, Mode: mode}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.logger.Trace("flow cache hit", "procedure", body.Name)

		return e.result, e.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok = c.entries[key]; ok {
		return e.result, e.err
	}

	c.logger.Trace("flow cache miss", "procedure", body.Name)
	res, err := flowanalysis.Run(body, opts...)
	c.entries[key] = &entry{result: res, err: err}

	return res, err
}

// Invalidate drops the cached entry for (procedureName, mode), if any.
// Useful when a driver reparses a procedure body under the same
// identity (e.g. after an edit in an IDE integration); the core itself
// never calls this.
func (c *Cache) Invalidate(procedureName string, mode flowanalysis.EvaluationMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, Key{Procedure: procedureName, Mode: mode})
}

// Len reports the number of cached entries, for diagnostics and tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
