package main

// Cell is the opcode of the threaded-code VM: the unit stored in compiled
// Routines (spec.md §3). The discriminator (kind) determines whether the
// Cell is meaningful to the Executor (Exec/Data/Call/Return/Branch*) or
// only to the Compiler (Compiler), matching the source's single `Cell` enum
// (dictionary.rs) rather than splitting native and immediate words into two
// dictionaries.
type Cell struct {
	kind cellKind

	// exec is the native primitive for kind == cellExec.
	exec func(vm *VM) error

	// compiler is the immediate word for kind == cellCompiler; invoked by
	// the Compiler only, never by the Executor.
	compiler func(vm *VM) (Routine, error)

	// data is the literal Value for kind == cellData.
	data Value

	// name is the dictionary key for kind == cellCall.
	name string
}

type cellKind uint8

const (
	cellExec cellKind = iota
	cellCompiler
	cellData
	cellCall
	cellReturn
	cellBranch
	cellBranchIfZero
	cellBranchIfNotZero
)

// Exec builds a Cell that calls a native primitive mutating VM state.
func Exec(f func(vm *VM) error) Cell { return Cell{kind: cellExec, exec: f} }

// CompilerCell builds an immediate-word Cell: invoked by the compiler,
// never by the executor, and expected to emit more Cells.
func CompilerCell(g func(vm *VM) (Routine, error)) Cell {
	return Cell{kind: cellCompiler, compiler: g}
}

// Data builds a Cell that pushes a literal Value onto the data stack.
func Data(v Value) Cell { return Cell{kind: cellData, data: v} }

// Call builds a Cell that resolves name in the dictionary and executes its
// Routine. The reference is symbolic (late binding): it is resolved fresh
// at every execution, not cached at compile time (spec.md §9).
func Call(name string) Cell { return Cell{kind: cellCall, name: name} }

// Return builds a Cell that ends the currently executing Routine.
func Return() Cell { return Cell{kind: cellReturn} }

// Branch builds a Cell that pops a signed offset from the data stack and
// jumps unconditionally.
func Branch() Cell { return Cell{kind: cellBranch} }

// BranchIfZero builds a Cell that pops an offset then a predicate, and
// jumps if the predicate is Int(0).
func BranchIfZero() Cell { return Cell{kind: cellBranchIfZero} }

// BranchIfNotZero builds a Cell that pops an offset then a predicate, and
// jumps if the predicate is not Int(0).
func BranchIfNotZero() Cell { return Cell{kind: cellBranchIfNotZero} }

// Routine is a finite ordered sequence of Cells: the compiled form of a
// word. A Branch* Cell in a well-formed Routine is always preceded by a
// Data(Int) Cell encoding its offset (spec.md §3 invariant 1); offsets are
// relative to the position immediately after the branch Cell (invariant 2).
type Routine []Cell

// Clone returns an independent copy of r, so that later redefinition of a
// dictionary entry cannot mutate a Routine already in flight (spec.md §3:
// "Dictionary... Lookup returns a cloned Routine").
func (r Routine) Clone() Routine {
	out := make(Routine, len(r))
	copy(out, r)
	return out
}
