package main

import "fmt"

// This file implements the error taxonomy of spec.md §7, grounded on the
// source's error.rs (a closed Error enum) but expressed as the small family
// of error types Go idiomatically uses with errors.Is/errors.As, the way
// the teacher wraps vmHaltError/haltError in core.go/internals.go.

// StackError indicates a pop or peek on an empty stack.
type StackError struct{}

func (StackError) Error() string { return "stack" }

// ParserError indicates an unrecognised token during interpretation, or an
// unterminated comment/string literal (Token == "EOL").
type ParserError struct {
	Token string
}

func (e ParserError) Error() string { return fmt.Sprintf("parser: %q", e.Token) }

// CompilerError signals that the compiler could not consume Token. It
// doubles as a structural signal to an enclosing immediate word (the
// terminator channel of spec.md §4.4) and as a terminal error if it escapes
// all the way to the driver.
type CompilerError struct {
	Partial Routine
	Token   string
}

func (e CompilerError) Error() string { return fmt.Sprintf("compiler: stopped at %q", e.Token) }

// ExecutorError indicates a malformed routine encountered at runtime (a
// non-integer branch offset or an unknown Cell kind); the `/` and `mod`
// primitives also raise it for division by zero. A program counter that
// leaves the Routine ends execution normally rather than raising it.
type ExecutorError struct {
	Reason string
}

func (e ExecutorError) Error() string {
	if e.Reason == "" {
		return "executor"
	}
	return fmt.Sprintf("executor: %s", e.Reason)
}

// UnimplementedError indicates a dictionary lookup miss (Dictionary.Get, or
// a Call Cell naming a word that is not bound).
type UnimplementedError struct {
	Name string
}

func (e UnimplementedError) Error() string { return fmt.Sprintf("unimplemented: %q", e.Name) }

// TypeError is reserved for value-level type mismatches. The current Value
// model never raises it: mixed-type arithmetic yields the "NAN" sentinel
// string instead of failing (spec.md §3, §7).
type TypeError struct{}

func (TypeError) Error() string { return "type" }
