package main

// Execute runs routine to completion: a program counter walks the Cell
// sequence, dispatching each Cell per spec.md §4.5, until pc falls outside
// [0, len(routine)) or a Return Cell is hit. Call recurses directly through
// Execute on the host call stack (spec.md §3, §4.5: "the design does not
// require an explicit return-stack-based threaded interpreter").
func (vm *VM) Execute(routine Routine) error {
	pc := 0
	for pc >= 0 && pc < len(routine) {
		cell := routine[pc]
		next := 1

		switch cell.kind {
		case cellExec:
			if err := cell.exec(vm); err != nil {
				return err
			}

		case cellCall:
			callee, err := vm.Dict.Get(cell.name)
			if err != nil {
				return err
			}
			if err := vm.Execute(callee); err != nil {
				return err
			}

		case cellData:
			vm.Data.Push(cell.data)

		case cellReturn:
			return nil

		case cellBranch:
			off, err := vm.popOffset()
			if err != nil {
				return err
			}
			next = off

		case cellBranchIfZero:
			off, err := vm.popOffset()
			if err != nil {
				return err
			}
			pred, err := vm.Data.Pop()
			if err != nil {
				return err
			}
			if pred.Equal(Int(0)) {
				next = off
			}

		case cellBranchIfNotZero:
			off, err := vm.popOffset()
			if err != nil {
				return err
			}
			pred, err := vm.Data.Pop()
			if err != nil {
				return err
			}
			if !pred.Equal(Int(0)) {
				next = off
			}

		case cellCompiler:
			return ParserError{Token: "compile-only word at runtime"}

		default:
			return ExecutorError{Reason: "invalid cell"}
		}

		pc += next
	}
	return nil
}

// popOffset pops the Int offset pushed by the Data(Int) Cell that spec.md
// §3 invariant 1 requires to precede every Branch* Cell.
func (vm *VM) popOffset() (int, error) {
	v, err := vm.Data.Pop()
	if err != nil {
		return 0, err
	}
	if !v.IsInt() {
		return 0, ExecutorError{Reason: "branch offset is not an integer"}
	}
	return int(v.Int64()), nil
}
