// SPDX-License-Identifier: MIT
package batch

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/halvard/flowslice/flowanalysis"
	"github.com/halvard/flowslice/flowcache"
	"github.com/halvard/flowslice/ir"
)

// Request names one procedure to analyze and the evaluation mode to
// analyze it under.
type Request struct {
	Body     *ir.Body
	Mode     flowanalysis.EvaluationMode
	Resolver flowanalysis.CallResolver
}

// ProcedureResult is one Request's outcome. Err is non-nil only for a
// Fatal-class failure (spec.md §7); a failed procedure never prevents
// the rest of the batch from completing.
type ProcedureResult struct {
	Procedure string
	Result    *flowanalysis.Result
	Err       error
}

// Options configures Evaluate.
type Options struct {
	Concurrency int
	Logger      hclog.Logger
	Cache       *flowcache.Cache
}

// Option is a functional option for Evaluate, matching this module's
// house style for configurable entry points.
type Option func(*Options)

// WithConcurrency bounds the number of procedures analyzed at once. A
// value <= 0 is ignored (the default stands).
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithLogger sets the logger passed through to each procedure's
// flowanalysis.Run.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithCache routes every Request through a shared flowcache.Cache
// instead of recomputing from scratch. Without this option, Evaluate
// computes every Request fresh.
func WithCache(c *flowcache.Cache) Option {
	return func(o *Options) { o.Cache = c }
}

// defaultOptions returns Options with one worker per available CPU,
// a no-op logger, and no shared cache.
func defaultOptions() Options {
	return Options{
		Concurrency: runtime.NumCPU(),
		Logger:      hclog.NewNullLogger(),
	}
}

// Evaluate runs flowanalysis.Run for every Request concurrently, over a
// worker pool bounded by Concurrency (spec.md §5's "top-level drivers"
// parallelism note). Each procedure's analysis context is fully
// independent, so no ordering is implied between results beyond their
// position in the returned slice mirroring reqs' order.
//
// The returned error is nil if every Request succeeded, and otherwise a
// *multierror.Error aggregating every Fatal-class failure (one
// malformed procedure's InvalidBody/UnsupportedConstruct error never
// aborts analysis of the others — spec.md §7's propagation policy,
// applied at batch granularity). Per-procedure detail, including which
// ProcedureResult failed, is always available in the returned slice
// regardless of the aggregate error.
func Evaluate(reqs []Request, opts ...Option) ([]ProcedureResult, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	results := make([]ProcedureResult, len(reqs))
	sem := make(chan struct{}, cfg.Concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, req Request) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = evaluateOne(req, cfg)
		}(i, req)
	}
	wg.Wait()

	var errs *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.Procedure, r.Err))
		}
	}

	return results, errs.ErrorOrNil()
}

func evaluateOne(req Request, cfg Options) ProcedureResult {
	runOpts := []flowanalysis.Option{
		flowanalysis.WithEvaluationMode(req.Mode),
		flowanalysis.WithLogger(cfg.Logger),
	}
	if req.Resolver != nil {
		runOpts = append(runOpts, flowanalysis.WithCallResolver(req.Resolver))
	}

	var (
		res *flowanalysis.Result
		err error
	)
	if cfg.Cache != nil {
		res, err = cfg.Cache.Get(req.Body, req.Mode, runOpts...)
	} else {
		res, err = flowanalysis.Run(req.Body, runOpts...)
	}

	return ProcedureResult{Procedure: req.Body.Name, Result: res, Err: err}
}
