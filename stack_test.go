package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	var s Stack
	s.Push(Int(1))
	s.Push(Int(2))
	s.Push(Int(3))
	require.Equal(t, 3, s.Len())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.True(t, v.Equal(Int(3)))
	assert.Equal(t, 2, s.Len())
}

func TestStackPopEmpty(t *testing.T) {
	var s Stack
	_, err := s.Pop()
	assert.IsType(t, StackError{}, err)
}

func TestStackAtIsTOSRelative(t *testing.T) {
	var s Stack
	s.Push(Int(1))
	s.Push(Int(2))
	s.Push(Int(3))

	v, err := s.At(0)
	require.NoError(t, err)
	assert.True(t, v.Equal(Int(3)), "index 0 is the top of stack")

	v, err = s.At(2)
	require.NoError(t, err)
	assert.True(t, v.Equal(Int(1)))

	_, err = s.At(3)
	assert.IsType(t, StackError{}, err)
}

func TestStackSetAt(t *testing.T) {
	var s Stack
	s.Push(Int(1))
	s.Push(Int(2))
	require.NoError(t, s.SetAt(0, Int(99)))

	v, err := s.At(0)
	require.NoError(t, err)
	assert.True(t, v.Equal(Int(99)))

	assert.IsType(t, StackError{}, s.SetAt(5, Int(0)))
}

func TestStackEachIsBottomToTop(t *testing.T) {
	var s Stack
	s.Push(Int(1))
	s.Push(Int(2))
	s.Push(Int(3))

	var seen []int64
	s.Each(func(v Value) { seen = append(seen, v.Int64()) })
	assert.Equal(t, []int64{1, 2, 3}, seen)
}

func TestStackReset(t *testing.T) {
	var s Stack
	s.Push(Int(1))
	s.Reset()
	assert.Equal(t, 0, s.Len())
}
