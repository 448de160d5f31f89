package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, src string) (Routine, error) {
	t.Helper()
	vm := newTestVM()
	vm.buffer = tokenize(src)
	return vm.Compile()
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "+", "."}, tokenize("  1   2 +\n. "))
}

func TestCompileLiteralsAndCalls(t *testing.T) {
	routine, err := compileSource(t, "1 2 + . ;")
	require.NoError(t, err)

	require.Len(t, routine, 4)
	assert.Equal(t, cellData, routine[0].kind)
	assert.True(t, routine[0].data.Equal(Int(1)))
	assert.Equal(t, cellData, routine[1].kind)
	assert.True(t, routine[1].data.Equal(Int(2)))
	assert.Equal(t, cellCall, routine[2].kind)
	assert.Equal(t, "+", routine[2].name)
	assert.Equal(t, cellCall, routine[3].kind)
	assert.Equal(t, ".", routine[3].name)
}

func TestCompileUnresolvableTokenErrors(t *testing.T) {
	_, err := compileSource(t, "garbage ;")
	require.Error(t, err)
	cerr, ok := err.(CompilerError)
	require.True(t, ok)
	assert.Equal(t, "garbage", cerr.Token)
}

func TestCompileUnterminatedIsEOL(t *testing.T) {
	_, err := compileSource(t, "1 2 +")
	require.Error(t, err)
	cerr, ok := err.(CompilerError)
	require.True(t, ok)
	assert.Equal(t, "EOL", cerr.Token)
}

func TestCompileIfThen(t *testing.T) {
	routine, err := compileSource(t, "if 1 . then ;")
	require.NoError(t, err)

	// Data(len(T)+3) BranchIfZero <T> Data(len(F)+1) Branch <F>
	// T = [Data(1) Call(".")]  (len 2) -> Data(5)
	// F = [] (len 0) -> Data(1)
	require.Len(t, routine, 6)
	assert.Equal(t, cellData, routine[0].kind)
	assert.True(t, routine[0].data.Equal(Int(5)))
	assert.Equal(t, cellBranchIfZero, routine[1].kind)
	assert.Equal(t, cellData, routine[2].kind)
	assert.True(t, routine[2].data.Equal(Int(1)))
	assert.Equal(t, cellCall, routine[3].kind)
	assert.Equal(t, cellData, routine[4].kind)
	assert.True(t, routine[4].data.Equal(Int(1)))
	assert.Equal(t, cellBranch, routine[5].kind)
}

func TestCompileIfElseThen(t *testing.T) {
	routine, err := compileSource(t, "if 1 else 2 then ;")
	require.NoError(t, err)

	// T = [Data(1)] (len 1) -> header Data(4); F = [Data(2)] (len 1) -> footer Data(2)
	require.Len(t, routine, 6)
	assert.True(t, routine[0].data.Equal(Int(4)))
	assert.Equal(t, cellBranchIfZero, routine[1].kind)
	assert.True(t, routine[2].data.Equal(Int(1)), "then body")
	assert.True(t, routine[3].data.Equal(Int(2)), "footer offset")
	assert.Equal(t, cellBranch, routine[4].kind)
	assert.True(t, routine[5].data.Equal(Int(2)), "else body")
}

func TestCompileUnterminatedIfIsEOL(t *testing.T) {
	_, err := compileSource(t, "if 1")
	require.Error(t, err)
	cerr, ok := err.(CompilerError)
	require.True(t, ok)
	assert.Equal(t, "EOL", cerr.Token)
}

func TestCompileNestedIf(t *testing.T) {
	routine, err := compileSource(t, "if if 1 then else 2 then ;")
	require.NoError(t, err)
	assert.NotEmpty(t, routine)
}

func TestCompileDoLoop(t *testing.T) {
	routine, err := compileSource(t, "do i . loop ;")
	require.NoError(t, err)

	// Exec(runtime_do) <body> Exec(runtime_loop) Data(-(len(body)+2)) BranchIfNotZero
	require.Len(t, routine, 6)
	assert.Equal(t, cellExec, routine[0].kind)
	assert.Equal(t, cellCall, routine[1].kind)
	assert.Equal(t, "i", routine[1].name)
	assert.Equal(t, cellCall, routine[2].kind)
	assert.Equal(t, ".", routine[2].name)
	assert.Equal(t, cellExec, routine[3].kind)
	assert.Equal(t, cellData, routine[4].kind)
	assert.True(t, routine[4].data.Equal(Int(-4)))
	assert.Equal(t, cellBranchIfNotZero, routine[5].kind)
}

func TestCompileDotQuote(t *testing.T) {
	routine, err := compileSource(t, `." hello world" ;`)
	require.NoError(t, err)
	require.Len(t, routine, 2)
	assert.Equal(t, cellData, routine[0].kind)
	assert.Equal(t, "hello world", routine[0].data.Display())
	assert.Equal(t, cellExec, routine[1].kind)
}

func TestCompileUnterminatedDotQuoteIsEOL(t *testing.T) {
	_, err := compileSource(t, `." hello`)
	require.Error(t, err)
	perr, ok := err.(ParserError)
	require.True(t, ok)
	assert.Equal(t, "EOL", perr.Token)
}
