// Command forthnucleus is an interactive interpreter and compiler for a
// small threaded-code Forth dialect: a dictionary of native and
// user-defined words, a data and return stack, and the handful of control
// structures (IF/ELSE/THEN, DO/LOOP, `."`) needed to write real programs.
//
// Piped input (a script redirected on stdin) runs non-interactively; -dump
// prints a listing of the dictionary when the run ends. An interactive terminal gets a readline-backed
// REPL with history and a continuation prompt while a `:` definition is
// still being buffered.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/forthnucleus/internal/logio"
)

func main() {
	var (
		trace        bool
		dump         bool
		handleErrors bool
		timeout      time.Duration
	)
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a dictionary dump after execution")
	flag.BoolVar(&handleErrors, "handle-errors", true, "recover from eval errors and keep reading")
	flag.DurationVar(&timeout, "timeout", 0, "report an error once evaluation of an input line (or, when piped, of the whole input) has run longer than this")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()
	defer log.Unwrap()

	opts := []VMOption{
		WithOutput(os.Stdout),
		WithHandleErrors(handleErrors),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("EVAL")))
	}
	vm := New(opts...)

	if dump {
		defer func() {
			lw := &logio.Writer{Logf: log.Leveledf("DICT")}
			defer lw.Close()
			log.ErrorIf(DumpDictionary(lw, vm.Dict))
		}()
	}

	var err error
	if stat, serr := os.Stdin.Stat(); serr == nil && stat.Mode()&os.ModeCharDevice == 0 {
		err = runPiped(vm, os.Stdin, timeout)
	} else {
		err = runREPL(vm, timeout)
	}
	log.ErrorIf(err)
}

// runPiped evaluates r through Run, which reads it in chunks of up to 4096
// bytes and evaluates each chunk as it arrives; used when stdin is not a
// terminal (a redirected script, or a test harness).
func runPiped(vm *VM, r io.Reader, timeout time.Duration) error {
	vm.read = r.Read
	err := evalWithTimeout(context.Background(), vm, Run, timeout)
	if cerr := vm.Close(); err == nil {
		err = cerr
	}
	return err
}

// runREPL drives an interactive chzyer/readline session: one line at a
// time through vm.Eval, with the prompt switching to "...> " while the
// driver is mid-`:`-definition (spec.md §4.6's FillBuffer/Compile states),
// matching the "> " / continuation-prompt convention of the teacher's own
// command-line tools.
func runREPL(vm *VM, timeout time.Duration) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	ctx := context.Background()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if vm.state == stateFillBuffer {
				// abandon the partial `:` definition and return to Interpret
				vm.buffer = vm.buffer[:0]
				vm.state = stateInterpret
				rl.SetPrompt("> ")
				continue
			}
			if len(line) == 0 {
				break
			}
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if everr := evalWithTimeout(ctx, vm, func(vm *VM) error { return vm.Eval(line) }, timeout); everr != nil {
			fmt.Fprintf(os.Stderr, "??? %v\n", everr)
		}
		if vm.state == stateInterpret {
			rl.SetPrompt("> ")
		} else {
			rl.SetPrompt("...> ")
		}
	}
	return vm.Close()
}

// evalWithTimeout runs eval(vm) to completion and reports via the returned
// error when it ran past timeout. The VM's own Execute/Compile loops have
// no cancellation points (the nucleus is deliberately synchronous and all
// mutation happens on the thread that called eval, spec.md §5), so this
// can never preempt a running eval: doing so would abandon its goroutine
// still mutating vm.Data/vm.Return/vm.buffer/vm.Dict while the caller moved
// on to the next input line, racing a second eval against the same VM.
// Instead it always blocks on g.Wait() for the call to actually finish,
// and only then reports the overrun via ctx.Err(), the way a misbehaving
// definition (an infinite DO/LOOP) is surfaced as slow rather than silently
// raced.
func evalWithTimeout(ctx context.Context, vm *VM, eval func(vm *VM) error, timeout time.Duration) error {
	if timeout <= 0 {
		return eval(vm)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return eval(vm) })

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return err
}
