package main

import (
	"io"

	"github.com/jcorbin/forthnucleus/internal/panicerr"
)

// Run drives vm by repeatedly calling its configured read function to pull
// input chunks, evaluating each through the driver (Eval), until read
// signals EOF. The whole loop runs under panicerr.Recover so a panic deep
// in a primitive, or a misbehaving third-party dependency reached through
// one, surfaces as a returned error rather than taking down the process —
// mirroring the boundary the teacher draws around its own top-level runner.
func Run(vm *VM) error {
	return panicerr.Recover("eval", func() error {
		buf := make([]byte, 4096)
		for {
			n, rerr := vm.read(buf)
			if n > 0 {
				if everr := vm.Eval(string(buf[:n])); everr != nil {
					return everr
				}
			}
			if rerr != nil {
				if rerr == io.EOF {
					return nil
				}
				return rerr
			}
			if n == 0 {
				return nil
			}
		}
	})
}
