package main

import (
	"io"

	"github.com/jcorbin/forthnucleus/internal/flushio"
)

// VMOption configures a VM at construction time, following the functional
// options pattern of the teacher's api.go/options.go.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(io.Discard),
)

// VMOptions flattens any number of options (including nil and other
// VMOptions values) into a single applicable VMOption.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*VM) {}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// WithRead sets the read closure (spec.md §6: "(buffer) → byte_count |
// io_error. Returns 0 to signal EOF.").
func WithRead(read func(buf []byte) (int, error)) VMOption { return withRead(read) }

// WithOutput sets the write sink.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee additionally mirrors output to w, alongside any previously set
// output.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithLogf enables trace logging through logf.
func WithLogf(logf func(mess string, args ...interface{})) VMOption { return withLogfn(logf) }

// WithHandleErrors overrides the default (true) HandleErrors behaviour
// (spec.md §7).
func WithHandleErrors(handle bool) VMOption { return handleErrorsOption(handle) }

type readOption struct{ fn func(buf []byte) (int, error) }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type handleErrorsOption bool
type withLogfn func(mess string, args ...interface{})

func withRead(fn func(buf []byte) (int, error)) readOption { return readOption{fn} }
func withOutput(w io.Writer) outputOption                  { return outputOption{w} }
func withTee(w io.Writer) teeOption                         { return teeOption{w} }

func (o readOption) apply(vm *VM) { vm.read = o.fn }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (logf withLogfn) apply(vm *VM) { vm.logfn = logf }

func (h handleErrorsOption) apply(vm *VM) { vm.HandleErrors = bool(h) }
