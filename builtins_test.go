package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinArithmetic(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want Value
	}{
		{"+", Int(2), Int(3), Int(5)},
		{"-", Int(5), Int(2), Int(3)},
		{"*", Int(4), Int(3), Int(12)},
		{"max", Int(4), Int(9), Int(9)},
		{"min", Int(4), Int(9), Int(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vm := newTestVM()
			vm.Data.Push(c.a)
			vm.Data.Push(c.b)
			require.NoError(t, vm.Execute(Routine{Call(c.name)}))
			v, err := vm.Data.Pop()
			require.NoError(t, err)
			assert.True(t, v.Equal(c.want))
		})
	}
}

func TestBuiltinComparisons(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{">", Int(5), Int(2), true},
		{">", Int(2), Int(5), false},
		{"<", Int(2), Int(5), true},
		{"<", Int(5), Int(2), false},
	}
	for _, c := range cases {
		vm := newTestVM()
		vm.Data.Push(c.a)
		vm.Data.Push(c.b)
		require.NoError(t, vm.Execute(Routine{Call(c.name)}))
		v, err := vm.Data.Pop()
		require.NoError(t, err)
		assert.Equal(t, c.want, v.Truthy())
	}
}

func TestBuiltinMixedTypeArithmeticIsNAN(t *testing.T) {
	vm := newTestVM()
	vm.Data.Push(Int(1))
	vm.Data.Push(String("x"))
	require.NoError(t, vm.Execute(Routine{Call("+")}))
	v, err := vm.Data.Pop()
	require.NoError(t, err)
	assert.Equal(t, "NAN", v.Display())
}

func TestBuiltinMod(t *testing.T) {
	vm := newTestVM()
	vm.Data.Push(Int(7))
	vm.Data.Push(Int(2))
	require.NoError(t, vm.Execute(Routine{Call("mod")}))
	v, err := vm.Data.Pop()
	require.NoError(t, err)
	assert.True(t, v.Equal(Int(1)))
}

func TestBuiltinModByZeroErrors(t *testing.T) {
	vm := newTestVM()
	vm.Data.Push(Int(7))
	vm.Data.Push(Int(0))
	err := vm.Execute(Routine{Call("mod")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestBuiltinStackShuffles(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		vm := newTestVM()
		vm.Data.Push(Int(1))
		vm.Data.Push(Int(2))
		require.NoError(t, vm.Execute(Routine{Call("swap")}))
		top, _ := vm.Data.At(0)
		bot, _ := vm.Data.At(1)
		assert.True(t, top.Equal(Int(1)))
		assert.True(t, bot.Equal(Int(2)))
	})

	t.Run("over", func(t *testing.T) {
		vm := newTestVM()
		vm.Data.Push(Int(1))
		vm.Data.Push(Int(2))
		require.NoError(t, vm.Execute(Routine{Call("over")}))
		require.Equal(t, 3, vm.Data.Len())
		top, _ := vm.Data.At(0)
		assert.True(t, top.Equal(Int(1)))
	})

	t.Run("rot", func(t *testing.T) {
		vm := newTestVM()
		vm.Data.Push(Int(1))
		vm.Data.Push(Int(2))
		vm.Data.Push(Int(3))
		require.NoError(t, vm.Execute(Routine{Call("rot")}))
		want := []int64{2, 3, 1} // bottom to top after (a b c -- b c a)
		for i, w := range want {
			v, err := vm.Data.At(len(want) - 1 - i)
			require.NoError(t, err)
			assert.True(t, v.Equal(Int(w)))
		}
	})

	t.Run("nip", func(t *testing.T) {
		vm := newTestVM()
		vm.Data.Push(Int(1))
		vm.Data.Push(Int(2))
		require.NoError(t, vm.Execute(Routine{Call("nip")}))
		require.Equal(t, 1, vm.Data.Len())
		v, _ := vm.Data.At(0)
		assert.True(t, v.Equal(Int(2)))
	})

	t.Run("tuck", func(t *testing.T) {
		vm := newTestVM()
		vm.Data.Push(Int(1))
		vm.Data.Push(Int(2))
		require.NoError(t, vm.Execute(Routine{Call("tuck")}))
		require.Equal(t, 3, vm.Data.Len())
		top, _ := vm.Data.At(0)
		assert.True(t, top.Equal(Int(2)))
	})
}

func TestBuiltinNegateAbs(t *testing.T) {
	vm := newTestVM()
	vm.Data.Push(Int(-5))
	require.NoError(t, vm.Execute(Routine{Call("abs")}))
	v, _ := vm.Data.Pop()
	assert.True(t, v.Equal(Int(5)))

	vm.Data.Push(Int(5))
	require.NoError(t, vm.Execute(Routine{Call("negate")}))
	v, _ = vm.Data.Pop()
	assert.True(t, v.Equal(Int(-5)))
}

func TestBuiltinQDup(t *testing.T) {
	vm := newTestVM()
	vm.Data.Push(Int(0))
	require.NoError(t, vm.Execute(Routine{Call("?dup")}))
	assert.Equal(t, 1, vm.Data.Len(), "?dup must not duplicate a falsy top")

	vm = newTestVM()
	vm.Data.Push(Int(7))
	require.NoError(t, vm.Execute(Routine{Call("?dup")}))
	assert.Equal(t, 2, vm.Data.Len())
}

func TestBuiltinDotS(t *testing.T) {
	vm, out := newEvalVM()
	vm.Data.Push(Int(1))
	vm.Data.Push(Int(2))
	require.NoError(t, vm.Execute(Routine{Call(".s")}))
	assert.Equal(t, "1 2", out.String())
}

func TestBuiltinLineCommentDiscardsBuffer(t *testing.T) {
	vm := newTestVM()
	vm.buffer = []string{"ignored", "tokens"}
	require.NoError(t, vm.Execute(Routine{Call(`\`)}))
	assert.Empty(t, vm.buffer)
}

func TestBuiltinInlineCommentSkipsToCloseParen(t *testing.T) {
	vm := newTestVM()
	vm.buffer = []string{"this", "is", "a", "comment)", "dup"}
	require.NoError(t, vm.Execute(Routine{Call("(")}))
	assert.Equal(t, []string{"dup"}, vm.buffer)
}

func TestBuiltinInlineCommentUnterminatedIsEOL(t *testing.T) {
	vm := newTestVM()
	vm.buffer = []string{"never", "closes"}
	err := vm.Execute(Routine{Call("(")})
	require.Error(t, err)
	perr, ok := err.(ParserError)
	require.True(t, ok)
	assert.Equal(t, "EOL", perr.Token)
}

func TestBuiltinLoopIndexNesting(t *testing.T) {
	vm := newTestVM()
	// outermost do pushed first: (limit=3 index=0), then inner (limit=2 index=1)
	vm.Return.Push(Int(3))
	vm.Return.Push(Int(0))
	vm.Return.Push(Int(2))
	vm.Return.Push(Int(1))

	require.NoError(t, vm.Execute(Routine{Call("i")}))
	v, _ := vm.Data.Pop()
	assert.True(t, v.Equal(Int(1)), "i reads the innermost loop's index")

	require.NoError(t, vm.Execute(Routine{Call("j")}))
	v, _ = vm.Data.Pop()
	assert.True(t, v.Equal(Int(0)), "j reads the next-outer loop's index")
}
