// SPDX-License-Identifier: MIT
package flowanalysis

import (
	"github.com/hashicorp/go-hclog"

	"github.com/halvard/flowslice/aliases"
	"github.com/halvard/flowslice/controldeps"
	"github.com/halvard/flowslice/indexset"
	"github.com/halvard/flowslice/ir"
	"github.com/halvard/flowslice/mutations"
	"github.com/halvard/flowslice/place"
)

// defaultRecursionBudget bounds Recurse-mode inlining depth, guarding
// against runaway or mutually recursive procedures (spec.md §4.5's
// RecursionBudgetExceeded downgrade).
const defaultRecursionBudget = 64

// Options configures a Run call.
type Options struct {
	Mode            EvaluationMode
	Resolver        CallResolver
	Logger          hclog.Logger
	RecursionBudget int
}

// Option is a functional option for Run, matching this module's house
// style for configurable entry points.
type Option func(*Options)

// WithEvaluationMode sets the precision mode.
func WithEvaluationMode(m EvaluationMode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithCallResolver sets the callee lookup used by Recurse mode.
func WithCallResolver(r CallResolver) Option {
	return func(o *Options) { o.Resolver = r }
}

// WithLogger sets the logger used to report modular-summary
// downgrades. Defaults to a no-op logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecursionBudget overrides the default recursion depth budget.
func WithRecursionBudget(n int) Option {
	return func(o *Options) { o.RecursionBudget = n }
}

// DefaultOptions returns Options with SigOnly/DistinguishMut/Precise
// mode, no call resolver, and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Mode:            DefaultEvaluationMode(),
		Logger:          hclog.NewNullLogger(),
		RecursionBudget: defaultRecursionBudget,
	}
}

// Run computes the forward information-flow fixpoint for body
// (spec.md §4.5) and returns a Result exposing per-point flow rows to
// package slicing.
func Run(body *ir.Body, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.RecursionBudget <= 0 {
		cfg.RecursionBudget = defaultRecursionBudget
	}

	r := &runner{
		body:     body,
		mode:     cfg.Mode,
		resolver: cfg.Resolver,
		budget:   cfg.RecursionBudget,
		logger:   cfg.Logger,
		stack:    make(map[string]bool),
		points:   indexset.NewIndexedDomain[ProgramPoint](64),
	}

	return r.run()
}

// runner holds one procedure activation's mutable fixpoint state.
// frame, depth, and stack track Recurse-mode inlining; points is
// shared across every activation of one top-level Run so that
// ProgramPoint identities stay stable across call frames.
type runner struct {
	body     *ir.Body
	mode     EvaluationMode
	resolver CallResolver
	frame    string
	depth    int
	budget   int
	stack    map[string]bool
	logger   hclog.Logger
	points   *indexset.IndexedDomain[ProgramPoint]

	al        *aliases.Aliases
	cd        *controldeps.ControlDependencies
	triplesAt map[ir.Location][]mutations.MutationTriple
}

func (r *runner) run() (*Result, error) {
	al, err := aliases.BuildAliases(r.body, r.mode.Aliases)
	if err != nil {
		return nil, err
	}
	r.al = al
	r.cd = controldeps.Build(r.body)
	r.triplesAt = indexTriples(mutations.Visit(r.body))

	entry := make(map[ir.BlockID]*FlowMatrix, len(r.body.Blocks))
	exit := make(map[ir.BlockID]*FlowMatrix, len(r.body.Blocks))
	entry[0] = newFlowMatrix(r.points)
	for i := 0; i < r.body.ParamCount; i++ {
		p := place.Root(r.body.ParamLocal(i))
		entry[0].SetRow(p, entry[0].rowOfPoints(argPoint(r.frame, i)))
		if _, isRef := r.body.Facts.RegionOf(p); isRef {
			// A reference parameter's pointee is itself influenced by
			// the argument from procedure entry: the callee has no
			// local definition for it (package aliases resolves it to
			// its own dereferenced place), so the self-input reads in
			// package mutations's triples need it seeded too.
			entry[0].SetRow(p.Project(place.DerefProj()), entry[0].rowOfPoints(argPoint(r.frame, i)))
		}
	}

	done := make(map[ir.BlockID]bool, len(r.body.Blocks))
	queued := make(map[ir.BlockID]bool, len(r.body.Blocks))
	queue := []ir.BlockID{0}
	queued[0] = true

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued[b] = false

		out, err := r.runBlockUpTo(entry[b], b, -1)
		if err != nil {
			return nil, err
		}
		done[b] = true
		exit[b] = out

		for _, s := range r.body.Successors(b) {
			if entry[s] == nil {
				entry[s] = newFlowMatrix(r.points)
			}
			changed := entry[s].JoinInto(out)
			if (changed || !done[s]) && !queued[s] {
				queue = append(queue, s)
				queued[s] = true
			}
		}
	}

	return &Result{
		r:      r,
		body:   r.body,
		frame:  r.frame,
		points: r.points,
		al:     r.al,
		cd:     r.cd,
		entry:  entry,
		exit:   exit,
	}, nil
}

// runBlockUpTo threads in through block b's locations in order, up to
// and including the location at index upto (or through the whole
// block when upto < 0), returning the resulting matrix. It is the
// single transfer implementation shared by the worklist loop and
// Result.At's on-demand interior-point replay.
func (r *runner) runBlockUpTo(in *FlowMatrix, b ir.BlockID, upto int) (*FlowMatrix, error) {
	cur := in
	for _, loc := range r.body.Locations(b) {
		next, err := r.applyAt(cur, loc)
		if err != nil {
			return nil, err
		}
		cur = next
		if upto >= 0 && loc.Index == upto {
			break
		}
	}

	return cur, nil
}

func indexTriples(triples []mutations.MutationTriple) map[ir.Location][]mutations.MutationTriple {
	out := make(map[ir.Location][]mutations.MutationTriple, len(triples))
	for _, tr := range triples {
		out[tr.Loc] = append(out[tr.Loc], tr)
	}

	return out
}
