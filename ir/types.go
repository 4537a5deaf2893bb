// SPDX-License-Identifier: MIT
package ir

import (
	"errors"
	"fmt"

	"github.com/halvard/flowslice/place"
)

// Sentinel errors for malformed procedure bodies, surfaced per the
// InvalidBody / UnsupportedConstruct taxonomy of spec.md §7.
var (
	// ErrInvalidBody indicates the IR violates the documented shape: a
	// block whose ID differs from its index, or a successor or call
	// destination naming a non-existent block. Fatal. Missing region
	// facts are reported by package aliases (aliases.ErrInvalidBody).
	ErrInvalidBody = errors.New("ir: invalid body")

	// ErrUnsupportedConstruct indicates a well-formed but unhandled
	// rvalue or terminator shape. Fatal within the procedure analysis.
	ErrUnsupportedConstruct = errors.New("ir: unsupported construct")
)

// BlockID indexes a Block within a Body. Blocks are numbered densely
// from 0; block 0 is the procedure's single entry block.
type BlockID int

// Location is a program point: the pair (block, index-within-block).
// Index ranges over [0, len(block.Statements)]; Index == len(Statements)
// names the block's Terminator. StartLocation is the distinguished
// pseudo-point preceding block 0 (spec.md §3). Formal parameters are
// seeded with ArgLocation pseudo-points, not with StartLocation.
type Location struct {
	Block BlockID
	Index int
}

// StartLocation precedes block 0 and is never itself inside a Block.
var StartLocation = Location{Block: -1, Index: -1}

// IsStart reports whether l is the distinguished start pseudo-point.
func (l Location) IsStart() bool { return l.Block == -1 }

// IsArg reports whether l is a synthetic argument pseudo-point
// produced by ArgLocation.
func (l Location) IsArg() bool { return l.Block <= -2 }

// ArgLocation returns the synthetic pseudo-point seeding the row of
// formal parameter paramIndex (0-based) at procedure entry (spec.md
// §4.5). Distinct parameters get distinct, stable pseudo-points, all
// disjoint from StartLocation and from every real block id.
func ArgLocation(paramIndex int) Location {
	return Location{Block: BlockID(-2 - paramIndex), Index: 0}
}

// String renders l as "bb3[2]", "<start>" for StartLocation, or
// "<arg N>" for an ArgLocation.
func (l Location) String() string {
	if l.IsStart() {
		return "<start>"
	}
	if l.IsArg() {
		return fmt.Sprintf("<arg %d>", -2-int(l.Block))
	}

	return fmt.Sprintf("bb%d[%d]", l.Block, l.Index)
}

// Region is a lifetime variable appearing in the body's types, per
// spec.md §4.2. Region 0 is reserved for "no meaningful region assigned"
// and never appears in a RegionFact.
type Region int

// RegionFact records one region-outlives constraint Longer ⊇ Shorter, as
// produced by the collaborator compiler's borrow checker for every
// assignment involving references (spec.md §4.2).
type RegionFact struct {
	Longer  Region
	Shorter Region
}

// BorrowFacts packages the region-outlives relation and the per-place
// region assignment that package aliases needs to build the abstract
// reference tree of spec.md §4.2.
//
// RefRegion maps the Key() of every place whose static type is a
// reference to the Region tagging that reference. A place with a Deref
// projection is resolved by looking up RefRegion on the prefix ending
// just before that Deref. RefMutable records, for the same key, whether
// that reference's type is `&mut` (true) or `&` (false).
type BorrowFacts struct {
	Outlives   []RegionFact
	RefRegion  map[string]Region
	RefMutable map[string]bool
}

// RegionOf looks up the region tagging the reference named by ref.
func (b BorrowFacts) RegionOf(ref place.Place) (Region, bool) {
	if b.RefRegion == nil {
		return 0, false
	}
	r, ok := b.RefRegion[ref.Key()]

	return r, ok
}

// IsMutableRef reports whether the reference named by ref is declared
// `&mut` (vs. `&`). Defaults to false (shared reference) if unknown.
func (b BorrowFacts) IsMutableRef(ref place.Place) bool {
	if b.RefMutable == nil {
		return false
	}

	return b.RefMutable[ref.Key()]
}

// RvalueKind enumerates the right-hand-side shapes of spec.md §4.4's
// mutation table.
type RvalueKind uint8

const (
	// Use is a bare operand: `lhs = rhs` where rhs reads a place, or a
	// constant (Places is empty).
	Use RvalueKind = iota
	// BinaryOp is `lhs = op(a, b, ...)`.
	BinaryOp
	// Ref is `lhs = &[mut] p` or `lhs = &raw [mut] p`.
	Ref
	// Aggregate is `lhs = Aggregate(ops)` (struct/tuple/array/enum literal).
	Aggregate
	// Cast is `lhs = Cast(op)`.
	Cast
	// Discriminant reads an enum's tag to drive a later switch; modeled
	// as an ordinary operand-producing rvalue per original_source (see
	// SPEC_FULL.md's Supplemented Features).
	Discriminant
)

// Rvalue is the right-hand side of an Assign statement.
type Rvalue struct {
	Kind    RvalueKind
	Places  []place.Place // operand places; empty for a bare constant Use
	Mutable bool          // for Ref: true iff `&mut`/`&raw mut`
}

// UseConst constructs the Rvalue for `lhs = <constant>`.
func UseConst() Rvalue { return Rvalue{Kind: Use} }

// UseOperand constructs the Rvalue for `lhs = p`.
func UseOperand(p place.Place) Rvalue { return Rvalue{Kind: Use, Places: []place.Place{p}} }

// BinaryOpRvalue constructs the Rvalue for `lhs = op(operands...)`.
func BinaryOpRvalue(operands ...place.Place) Rvalue {
	return Rvalue{Kind: BinaryOp, Places: operands}
}

// RefRvalue constructs the Rvalue for `lhs = &[mut] p`.
func RefRvalue(p place.Place, mutable bool) Rvalue {
	return Rvalue{Kind: Ref, Places: []place.Place{p}, Mutable: mutable}
}

// AggregateRvalue constructs the Rvalue for `lhs = Aggregate(ops)`.
func AggregateRvalue(ops ...place.Place) Rvalue {
	return Rvalue{Kind: Aggregate, Places: ops}
}

// CastRvalue constructs the Rvalue for `lhs = Cast(op)`.
func CastRvalue(op place.Place) Rvalue { return Rvalue{Kind: Cast, Places: []place.Place{op}} }

// DiscriminantRvalue constructs the Rvalue for reading an enum's variant
// tag from scrutinee.
func DiscriminantRvalue(scrutinee place.Place) Rvalue {
	return Rvalue{Kind: Discriminant, Places: []place.Place{scrutinee}}
}

// StmtKind tags a Statement's shape.
type StmtKind uint8

const (
	// StmtAssign is `lhs = rvalue`.
	StmtAssign StmtKind = iota
	// StmtDrop is `drop(p)`.
	StmtDrop
)

// Statement is one non-terminating instruction within a Block.
type Statement struct {
	Kind   StmtKind
	LHS    place.Place // valid for StmtAssign
	RHS    Rvalue      // valid for StmtAssign
	Dropped place.Place // valid for StmtDrop
}

// AssignStmt constructs a StmtAssign statement.
func AssignStmt(lhs place.Place, rhs Rvalue) Statement {
	return Statement{Kind: StmtAssign, LHS: lhs, RHS: rhs}
}

// DropStmt constructs a StmtDrop statement.
func DropStmt(p place.Place) Statement {
	return Statement{Kind: StmtDrop, Dropped: p}
}

// TermKind tags a Terminator's shape.
type TermKind uint8

const (
	// TermGoto transfers unconditionally to a single successor.
	TermGoto TermKind = iota
	// TermSwitchInt branches to one of several successors based on the
	// value of Condition.
	TermSwitchInt
	// TermReturn ends the procedure normally. Only TermReturn blocks are
	// exit nodes of the reversed CFG (spec.md §4.3, §9(b)).
	TermReturn
	// TermCall invokes Call.Func and transfers to Call.Dest on normal
	// return.
	TermCall
	// TermAssert branches to Call.Dest (success) or panics (failure)
	// based on Condition.
	TermAssert
	// TermUnwind models a panicking/unwinding edge. Never an exit node.
	TermUnwind
	// TermUnreachable marks dead code; no successors, no mutation.
	TermUnreachable
)

// Call describes a TermCall or the success path of a TermAssert.
type Call struct {
	Func       string
	Args       []place.Place
	MutRefArgs []int // indices into Args passed as &mut
	Ret        place.Place
	HasRet     bool
	Dest       BlockID
	HasDest    bool
}

// Terminator ends a Block.
type Terminator struct {
	Kind       TermKind
	Successors []BlockID // for TermGoto/TermSwitchInt/TermAssert/TermUnwind
	Condition  place.Place
	HasCond    bool // whether Condition reads a place (vs. a constant)
	Call       *Call
}

// Block is one basic block: a straight-line Statement sequence ending
// in a Terminator.
type Block struct {
	ID         BlockID
	Statements []Statement
	Terminator Terminator
}

// Body is a single procedure in three-address form (spec.md §3).
type Body struct {
	Name       string // procedure identity, used for cache keys and recursion detection
	ParamCount int    // locals 1..ParamCount are formal parameters
	Blocks     []Block
	Facts      BorrowFacts

	preds map[BlockID][]BlockID
}

// NewBody constructs a Body and precomputes its predecessor map.
// Returns ErrInvalidBody if any successor or Call.Dest names a
// non-existent block.
func NewBody(name string, paramCount int, blocks []Block, facts BorrowFacts) (*Body, error) {
	b := &Body{Name: name, ParamCount: paramCount, Blocks: blocks, Facts: facts}
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.buildPredecessors()

	return b, nil
}

func (b *Body) validate() error {
	n := BlockID(len(b.Blocks))
	for i, blk := range b.Blocks {
		if blk.ID != BlockID(i) {
			return fmt.Errorf("%w: block at index %d has ID %d", ErrInvalidBody, i, blk.ID)
		}
		for _, s := range blk.Terminator.Successors {
			if s < 0 || s >= n {
				return fmt.Errorf("%w: block %d has out-of-range successor %d", ErrInvalidBody, blk.ID, s)
			}
		}
		if blk.Terminator.Call != nil && blk.Terminator.Call.HasDest {
			d := blk.Terminator.Call.Dest
			if d < 0 || d >= n {
				return fmt.Errorf("%w: block %d call destination %d out of range", ErrInvalidBody, blk.ID, d)
			}
		}
	}

	return nil
}

func (b *Body) buildPredecessors() {
	b.preds = make(map[BlockID][]BlockID, len(b.Blocks))
	for _, blk := range b.Blocks {
		for _, s := range blk.allSuccessors() {
			b.preds[s] = append(b.preds[s], blk.ID)
		}
	}
}

// allSuccessors returns every block this block's terminator may
// transfer control to, including a TermCall's normal-return Dest.
func (blk Block) allSuccessors() []BlockID {
	succs := append([]BlockID(nil), blk.Terminator.Successors...)
	if blk.Terminator.Call != nil && blk.Terminator.Call.HasDest {
		succs = append(succs, blk.Terminator.Call.Dest)
	}

	return succs
}

// Successors returns id's outgoing block edges.
func (b *Body) Successors(id BlockID) []BlockID {
	return b.Blocks[id].allSuccessors()
}

// Predecessors returns id's incoming block edges.
func (b *Body) Predecessors(id BlockID) []BlockID {
	return b.preds[id]
}

// Block returns the block with the given ID.
func (b *Body) Block(id BlockID) *Block {
	return &b.Blocks[id]
}

// NumBlocks returns the number of blocks in the body.
func (b *Body) NumBlocks() int { return len(b.Blocks) }

// Locations returns every Location in block id, statements then the
// terminator, in program order.
func (b *Body) Locations(id BlockID) []Location {
	blk := b.Blocks[id]
	locs := make([]Location, 0, len(blk.Statements)+1)
	for i := range blk.Statements {
		locs = append(locs, Location{Block: id, Index: i})
	}

	return append(locs, Location{Block: id, Index: len(blk.Statements)})
}

// AllLocations returns every Location in the body, block 0 first, in
// program order within each block. This is the Location domain `L` of
// spec.md §3's Flow matrix before formal-parameter slots are added.
func (b *Body) AllLocations() []Location {
	var out []Location
	for i := range b.Blocks {
		out = append(out, b.Locations(BlockID(i))...)
	}

	return out
}

// IsTerminator reports whether loc names a block's terminator rather
// than one of its statements.
func (b *Body) IsTerminator(loc Location) bool {
	return loc.Index == len(b.Blocks[loc.Block].Statements)
}

// ParamLocal returns the Local for formal parameter index i (0-based).
func (b *Body) ParamLocal(i int) place.Local { return place.Local(i + 1) }
