package main

import "strings"

// tokenize splits an input chunk on ASCII whitespace, preserving no
// quoting of its own (spec.md §4.1).
func tokenize(input string) []string {
	return strings.Fields(input)
}

// nextToken pops the next token off the driver's input buffer FIFO.
func (vm *VM) nextToken() (string, bool) {
	if len(vm.buffer) == 0 {
		return "", false
	}
	tok := vm.buffer[0]
	vm.buffer = vm.buffer[1:]
	return tok, true
}

// Compile implements the compiler algorithm of spec.md §4.4: drain tokens
// from the input buffer, resolving each against the dictionary, expanding
// immediate (Compiler) words in place, and emitting a flat Routine.
//
// It returns (routine, nil) on a successful `;`. It returns a CompilerError
// both as a terminal error (token unresolvable) and as the structural
// signal an enclosing immediate word uses to learn which token stopped a
// nested compile (spec.md §4.4, §9 "Error as control signal").
func (vm *VM) Compile() (Routine, error) {
	var routine Routine
	for {
		token, ok := vm.nextToken()
		if !ok {
			return routine, CompilerError{Partial: routine, Token: "EOL"}
		}

		if token == ";" {
			return routine, nil
		}

		if entry, err := vm.Dict.Get(token); err == nil {
			if len(entry) == 1 && entry[0].kind == cellCompiler {
				emitted, err := entry[0].compiler(vm)
				if err != nil {
					if cerr, ok := err.(CompilerError); ok {
						return append(routine, cerr.Partial...),
							CompilerError{Partial: append(routine, cerr.Partial...), Token: cerr.Token}
					}
					return routine, err
				}
				routine = append(routine, emitted...)
				continue
			}
			routine = append(routine, Call(token))
			continue
		}

		if v, ok := ParseInt(token); ok {
			routine = append(routine, Data(v))
			continue
		}

		return routine, CompilerError{Partial: routine, Token: token}
	}
}

// compileBodyUntil compiles tokens via Compile and classifies the outcome
// against a set of expected structural terminators (e.g. "else", "then").
// It returns the emitted body, the terminator token actually seen, and an
// error only when the body ended on a token NOT in terminators (including
// a clean `;`, reported as terminator "" with a synthetic error so the
// caller can tell it apart from a genuine structural stop) — matching the
// "propagate Compiler(emitted_so_far, token)" rule of spec.md §4.4.1 for
// tokens the immediate word itself does not recognise.
func (vm *VM) compileBodyUntil(terminators ...string) (body Routine, terminator string, err error) {
	body, err = vm.Compile()
	if err == nil {
		// Compile() hit `;` before any structural terminator: report it as
		// an unrecognised terminator so the caller propagates correctly.
		return body, "", CompilerError{Partial: body, Token: ";"}
	}
	cerr, ok := err.(CompilerError)
	if !ok {
		return body, "", err
	}
	for _, t := range terminators {
		if cerr.Token == t {
			return cerr.Partial, cerr.Token, nil
		}
	}
	return cerr.Partial, cerr.Token, cerr
}
