package main

import "strings"

// registerBuiltins installs the primitive catalogue into dict: arithmetic,
// stack shuffles, output, comments, loop index access, and the three
// compile-time (immediate) words that lower control structures
// (spec.md §6, §8's CLI surface list, supplemented per SPEC_FULL.md §11
// with the fuller set the original drafts define: rot, nip, tuck, negate,
// abs, max, min, 1-, ?dup, j, and the `>`/`<` comparisons scenario 3
// requires but §6 never names explicitly).
//
// Each is "a trivial stack transformer" (spec.md §1) except the three
// compiler hooks, which are the sole Non-goal-exempt immediate words
// (spec.md §4).
func registerBuiltins(dict *Dictionary) {
	bin := func(name string, f func(a, b Value) Value) {
		dict.Add(name, Routine{Exec(binaryOp(f))})
	}
	bin("+", Value.Add)
	bin("-", Value.Sub)
	bin("*", Value.Mul)
	bin("max", Value.Max)
	bin("min", Value.Min)

	dict.Add("/", Routine{Exec(opDiv)})
	dict.Add("mod", Routine{Exec(opMod)})

	dict.Add("dup", Routine{Exec(opDup)})
	dict.Add("drop", Routine{Exec(opDrop)})
	dict.Add("swap", Routine{Exec(opSwap)})
	dict.Add("over", Routine{Exec(opOver)})
	dict.Add("rot", Routine{Exec(opRot)})
	dict.Add("nip", Routine{Exec(opNip)})
	dict.Add("tuck", Routine{Exec(opTuck)})
	dict.Add("negate", Routine{Exec(opNegate)})
	dict.Add("abs", Routine{Exec(opAbs)})
	dict.Add("=", Routine{Exec(opEqual)})
	dict.Add(">", Routine{Exec(opGreater)})
	dict.Add("<", Routine{Exec(opLess)})
	dict.Add("1-", Routine{Exec(opDecrement)})
	dict.Add("?dup", Routine{Exec(opQDup)})

	dict.Add(".", Routine{Exec(opDot)})
	dict.Add(".s", Routine{Exec(opDotS)})
	dict.Add("cr", Routine{Exec(opCR)})
	dict.Add("space", Routine{Exec(opSpace)})

	dict.Add("i", Routine{Exec(opLoopIndex(0))})
	dict.Add("j", Routine{Exec(opLoopIndex(2))})

	dict.Add(`\`, Routine{Exec(opLineComment)})
	dict.Add("(", Routine{Exec(opInlineComment)})

	dict.Add("if", Routine{CompilerCell(compileIf)})
	dict.Add("do", Routine{CompilerCell(compileDo)})
	dict.Add(`."`, Routine{CompilerCell(compileDotQuote)})
}

func binaryOp(f func(a, b Value) Value) func(vm *VM) error {
	return func(vm *VM) error {
		b, err := vm.Data.Pop()
		if err != nil {
			return err
		}
		a, err := vm.Data.Pop()
		if err != nil {
			return err
		}
		vm.Data.Push(f(a, b))
		return nil
	}
}

// opDiv implements `/`. Division by an Int(0) would panic the host process
// (as it would in the source's Rust i64 division); the VM nucleus guards
// it explicitly rather than letting a malformed program crash the REPL.
func opDiv(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	if b.IsInt() && b.Int64() == 0 {
		return ExecutorError{Reason: "division by zero"}
	}
	vm.Data.Push(a.Div(b))
	return nil
}

func opMod(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	if b.IsInt() && b.Int64() == 0 {
		return ExecutorError{Reason: "division by zero"}
	}
	vm.Data.Push(a.Mod(b))
	return nil
}

// Symbol  Name   Function
//  dup    dup    copy the top of stack
func opDup(vm *VM) error {
	v, err := vm.Data.At(0)
	if err != nil {
		return err
	}
	vm.Data.Push(v)
	return nil
}

// drop discards the top of stack.
func opDrop(vm *VM) error {
	_, err := vm.Data.Pop()
	return err
}

// swap exchanges the top two stack elements.
func opSwap(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(b)
	vm.Data.Push(a)
	return nil
}

// over copies the second stack element to the top: (a b -- a b a).
func opOver(vm *VM) error {
	v, err := vm.Data.At(1)
	if err != nil {
		return err
	}
	vm.Data.Push(v)
	return nil
}

// rot rotates the top three stack elements: (a b c -- b c a).
func opRot(vm *VM) error {
	c, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(b)
	vm.Data.Push(c)
	vm.Data.Push(a)
	return nil
}

// nip discards the second stack element: (a b -- b).
func opNip(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	if _, err := vm.Data.Pop(); err != nil {
		return err
	}
	vm.Data.Push(b)
	return nil
}

// tuck copies the top element under the second: (a b -- b a b).
func opTuck(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(b)
	vm.Data.Push(a)
	vm.Data.Push(b)
	return nil
}

// negate flips the sign of an Int top of stack; non-Int values pass
// through untouched.
func opNegate(vm *VM) error {
	v, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(v.Neg())
	return nil
}

// abs replaces an Int top of stack with its absolute value.
func opAbs(vm *VM) error {
	v, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(v.Abs())
	return nil
}

// = pops two Values and pushes the canonical boolean for their equality.
func opEqual(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(Bool(a.Equal(b)))
	return nil
}

// > pops two Values and pushes the canonical boolean for a > b.
func opGreater(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(Bool(b.Less(a)))
	return nil
}

// < pops two Values and pushes the canonical boolean for a < b.
func opLess(vm *VM) error {
	b, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(Bool(a.Less(b)))
	return nil
}

// 1- decrements the top of stack by one.
func opDecrement(vm *VM) error {
	v, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Data.Push(v.Sub(Int(1)))
	return nil
}

// ?dup duplicates the top of stack only if it is non-zero.
func opQDup(vm *VM) error {
	v, err := vm.Data.At(0)
	if err != nil {
		return err
	}
	if v.Truthy() {
		vm.Data.Push(v)
	}
	return nil
}

// . pops the top of stack and writes its display form.
func opDot(vm *VM) error {
	v, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.write(v.Display())
	return nil
}

// .s writes the whole data stack, bottom to top, without consuming it.
func opDotS(vm *VM) error {
	first := true
	vm.Data.Each(func(v Value) {
		if !first {
			vm.write(" ")
		}
		first = false
		vm.write(v.Display())
	})
	return nil
}

func opCR(vm *VM) error {
	vm.write("\n")
	return nil
}

func opSpace(vm *VM) error {
	vm.write(" ")
	return nil
}

// opLoopIndex returns a primitive that pushes the return-stack loop index
// at depth (0 = innermost `i`, 2 = next-outer `j`): each nested DO pushes
// (limit, index) pairs, so the index itself sits at even offsets.
func opLoopIndex(depth int) func(vm *VM) error {
	return func(vm *VM) error {
		v, err := vm.Return.At(depth)
		if err != nil {
			return err
		}
		vm.Data.Push(v)
		return nil
	}
}

// opLineComment implements `\`: discards the remainder of the current
// input buffer, since source is only ever processed one buffered chunk at
// a time (spec.md §6).
func opLineComment(vm *VM) error {
	vm.buffer = vm.buffer[:0]
	return nil
}

// opInlineComment implements `( ... )`: discards tokens up to and
// including the first one ending in `)`. An unterminated comment is a
// Parser("EOL") error, matching the `."` string-literal failure mode.
func opInlineComment(vm *VM) error {
	for {
		tok, ok := vm.nextToken()
		if !ok {
			return ParserError{Token: "EOL"}
		}
		if strings.HasSuffix(tok, ")") {
			return nil
		}
	}
}

// compileIf lowers `IF ... ELSE ... THEN` to the branch sequence of
// spec.md §4.4.1.
func compileIf(vm *VM) (Routine, error) {
	then, term, err := vm.compileBodyUntil("else", "then")
	if err != nil {
		return then, err
	}

	var els Routine
	if term == "else" {
		var elsErr error
		els, _, elsErr = vm.compileBodyUntil("then")
		if elsErr != nil {
			combined := append(append(Routine{}, then...), els...)
			if cerr, ok := elsErr.(CompilerError); ok {
				return combined, CompilerError{Partial: combined, Token: cerr.Token}
			}
			return combined, elsErr
		}
	}

	out := make(Routine, 0, len(then)+len(els)+4)
	out = append(out, Data(Int(int64(len(then)+3))), BranchIfZero())
	out = append(out, then...)
	out = append(out, Data(Int(int64(len(els)+1))), Branch())
	out = append(out, els...)
	return out, nil
}

// compileDo lowers `DO ... LOOP/+LOOP/-LOOP` to the branch sequence of
// spec.md §4.4.2.
func compileDo(vm *VM) (Routine, error) {
	body, term, err := vm.compileBodyUntil("loop", "+loop", "-loop")
	if err != nil {
		return body, err
	}

	var variant func(vm *VM) error
	switch term {
	case "loop":
		variant = runtimeLoop
	case "+loop":
		variant = runtimePlusLoop
	case "-loop":
		variant = runtimeMinusLoop
	}

	out := make(Routine, 0, len(body)+4)
	out = append(out, Exec(runtimeDo))
	out = append(out, body...)
	out = append(out, Exec(variant))
	out = append(out, Data(Int(-(int64(len(body))+2))), BranchIfNotZero())
	return out, nil
}

// runtimeDo implements the `(limit index --)` setup of spec.md §4.4.2:
// pop index then limit off the data stack (index is top), push limit then
// index onto the return stack.
func runtimeDo(vm *VM) error {
	index, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	limit, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.Return.Push(limit)
	vm.Return.Push(index)
	return nil
}

func runtimeLoop(vm *VM) error     { return runtimeLoopStep(vm, Int(1), false) }
func runtimePlusLoop(vm *VM) error { return runtimeLoopStepPopped(vm, false) }
func runtimeMinusLoop(vm *VM) error { return runtimeLoopStepPopped(vm, true) }

func runtimeLoopStepPopped(vm *VM, decrement bool) error {
	step, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	return runtimeLoopStep(vm, step, decrement)
}

// runtimeLoopStep implements the shared body of runtime_loop,
// runtime_plus_loop and runtime_minus_loop (spec.md §4.4.2): advance the
// return-stack index by step (incrementing, or decrementing for -loop),
// compare against the limit, and either restore (limit, index) and push a
// truthy continuation flag, or leave the return stack drained and push a
// falsy one.
func runtimeLoopStep(vm *VM, step Value, decrement bool) error {
	index, err := vm.Return.Pop()
	if err != nil {
		return err
	}
	limit, err := vm.Return.Pop()
	if err != nil {
		return err
	}

	var next int64
	var cont bool
	if decrement {
		next = index.Int64() - step.Int64()
		cont = next > limit.Int64()
	} else {
		next = index.Int64() + step.Int64()
		cont = next < limit.Int64()
	}

	if cont {
		vm.Return.Push(limit)
		vm.Return.Push(Int(next))
		vm.Data.Push(Int(1))
	} else {
		vm.Data.Push(Int(0))
	}
	return nil
}

// compileDotQuote lowers `." text"` to a string literal push plus a print
// primitive (spec.md §4.4.3). It reads raw tokens directly off the input
// buffer rather than recursing into Compile, since the text between the
// quotes is not itself Forth source.
func compileDotQuote(vm *VM) (Routine, error) {
	var parts []string
	for {
		tok, ok := vm.nextToken()
		if !ok {
			return nil, ParserError{Token: "EOL"}
		}
		if strings.HasSuffix(tok, `"`) {
			parts = append(parts, strings.TrimSuffix(tok, `"`))
			break
		}
		parts = append(parts, tok)
	}
	return Routine{Data(String(strings.Join(parts, " "))), Exec(runtimePrintString)}, nil
}

// runtimePrintString pops the top Value and writes its display form.
func runtimePrintString(vm *VM) error {
	v, err := vm.Data.Pop()
	if err != nil {
		return err
	}
	vm.write(v.Display())
	return nil
}
