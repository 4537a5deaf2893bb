// Package slicing projects a computed flow matrix into the three
// query shapes a caller actually wants: which program points influence
// a place at a point (backward slice), which program points a place's
// value at a point goes on to influence (forward slice), and which
// program points mutate a place at all, anywhere in the body (mutation
// finding). All three walk a *flowanalysis.Result produced by Run;
// none recompute the fixpoint.
package slicing
