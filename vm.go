package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/forthnucleus/internal/flushio"
)

// driverState is one of {Interpret, FillBuffer, Compile} (spec.md §3, §4.6).
type driverState uint8

const (
	stateInterpret driverState = iota
	stateFillBuffer
	stateCompile
)

func (s driverState) String() string {
	switch s {
	case stateInterpret:
		return "interpret"
	case stateFillBuffer:
		return "fill-buffer"
	case stateCompile:
		return "compile"
	default:
		return "unknown"
	}
}

// VM is the complete Forth nucleus: the data and return stacks, the
// dictionary, the driver's input buffer and state, and the I/O sink.
// Composition mirrors the teacher's VM struct in core.go/first.go (small
// embedded mixins rather than one flat bag of fields).
type VM struct {
	logging

	Data   Stack // the data stack: operands
	Return Stack // the return stack: loop counters (and, abstractly, call frames)

	Dict *Dictionary

	out     flushio.WriteFlusher
	closers []io.Closer

	read func(buf []byte) (int, error)

	// HandleErrors controls driver error propagation (spec.md §7): if true
	// (the default) an error resets the driver to Interpret and discards
	// the remainder of the input buffer; if false it propagates to the
	// caller of Eval.
	HandleErrors bool

	state  driverState
	buffer []string // FIFO of tokens not yet consumed
}

// logging mirrors the teacher's logging mixin (core.go): a nil-safe logf
// hook, toggled on by -trace in main.go via WithLogf.
type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log *logging) logf(format string, args ...interface{}) {
	if log.logfn != nil {
		log.logfn(format, args...)
	}
}

// New constructs a VM with the given options applied over sane defaults
// (discard output, no input, HandleErrors true), then installs the builtin
// primitive catalogue (builtins.go).
func New(opts ...VMOption) *VM {
	vm := &VM{
		Dict:         NewDictionary(),
		HandleErrors: true,
	}
	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)
	if vm.out == nil {
		withOutput(io.Discard).apply(vm)
	}
	if vm.read == nil {
		vm.read = func([]byte) (int, error) { return 0, io.EOF }
	}
	registerBuiltins(vm.Dict)
	return vm
}

// Close flushes output and closes any owned closers (output writers given
// to WithOutput/WithTee that implement io.Closer), in reverse registration
// order, matching core.go's Close.
func (vm *VM) Close() error {
	var err error
	if vm.out != nil {
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// write sends text to the output sink. Per spec.md §6, writes are
// fire-and-forget: an I/O error from the sink is logged but never returned
// to the caller of a primitive.
func (vm *VM) write(text string) {
	if vm.out == nil {
		return
	}
	if _, err := io.WriteString(vm.out, text); err != nil {
		vm.logf("write error: %v", err)
	}
}

// writeError formats and writes an error the way the driver reports it
// (spec.md §7: "The driver formats the error via write").
func (vm *VM) writeError(err error) {
	vm.write(fmt.Sprintf("??? %v\n", err))
}
