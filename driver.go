package main

// Eval feeds input through the tokeniser and pumps the driver state
// machine (spec.md §4.6) until the token buffer is empty and the state is
// idle (Interpret or FillBuffer). It is the sole external entry point for
// running Forth source through a VM.
func (vm *VM) Eval(input string) error {
	vm.buffer = append(vm.buffer, tokenize(input)...)
	return vm.pump()
}

// Idle reports whether the driver is ready to accept more input:
// Interpret and FillBuffer are idle states; Compile always runs to
// completion (or to error) within a single pump, so it is never observed
// idle from outside.
func (vm *VM) Idle() bool {
	return vm.state == stateInterpret || vm.state == stateFillBuffer
}

// pump runs the Interpret / FillBuffer / Compile transition table of
// spec.md §4.6 until the driver goes idle or an unhandled error escapes.
func (vm *VM) pump() error {
	for {
		switch vm.state {
		case stateInterpret:
			if len(vm.buffer) == 0 {
				return nil
			}
			if vm.buffer[0] == ":" {
				vm.state = stateFillBuffer
				continue
			}
			token, _ := vm.nextToken()
			if err := vm.interpretToken(token); err != nil {
				if rerr := vm.handleError(err); rerr != nil {
					return rerr
				}
			}

		case stateFillBuffer:
			if !containsToken(vm.buffer, ";") {
				return nil
			}
			vm.state = stateCompile

		case stateCompile:
			vm.nextToken() // discard the leading ':'
			name, ok := vm.nextToken()
			if !ok {
				if rerr := vm.handleError(ParserError{Token: "EOL"}); rerr != nil {
					return rerr
				}
				continue
			}
			routine, err := vm.Compile()
			if err != nil {
				if rerr := vm.handleError(err); rerr != nil {
					return rerr
				}
				continue
			}
			vm.Dict.Add(name, routine)
			vm.state = stateInterpret
		}
	}
}

// interpretToken implements the Interpret-state dispatch rule of spec.md
// §4.6: a dictionary hit executes, a base-10 integer pushes a literal,
// anything else is a Parser error.
func (vm *VM) interpretToken(token string) error {
	if routine, err := vm.Dict.Get(token); err == nil {
		return vm.Execute(routine)
	}
	if v, ok := ParseInt(token); ok {
		vm.Data.Push(v)
		return nil
	}
	return ParserError{Token: token}
}

// handleError reports err via the write sink and, per spec.md §7, either
// swallows it (resetting to Interpret and discarding the input buffer,
// when HandleErrors is true — the default) or returns it for Eval to
// propagate to its caller.
func (vm *VM) handleError(err error) error {
	vm.writeError(err)
	vm.logf("eval error: %v", err)
	if vm.HandleErrors {
		vm.buffer = vm.buffer[:0]
		vm.state = stateInterpret
		return nil
	}
	return err
}

func containsToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}
