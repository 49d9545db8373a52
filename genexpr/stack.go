package genexpr

import "fmt"

// staticStack is a fixed-capacity stack; a postfix program of n genes never holds more
// than n values, so the evaluator sizes it up front and never grows it
type staticStack[T any] struct {
	stack  []T
	length int
}

func newStaticStack[T any](length int) *staticStack[T] {
	return &staticStack[T]{
		stack:  make([]T, length),
		length: 0,
	}
}

func (s *staticStack[T]) Push(v T) error {
	if s.length >= len(s.stack) {
		return fmt.Errorf("stack has reached maximum capacity (%d)", len(s.stack))
	}

	s.stack[s.length] = v
	s.length++
	return nil
}

func (s *staticStack[T]) Pop() (T, error) {
	if s.length == 0 {
		var zero T
		return zero, fmt.Errorf("stack is empty")
	}

	s.length--
	return s.stack[s.length], nil
}

func (s *staticStack[T]) Peek() (T, error) {
	if s.length == 0 {
		var zero T
		return zero, fmt.Errorf("stack is empty")
	}

	return s.stack[s.length-1], nil
}

func (s *staticStack[T]) Size() int {
	return s.length
}
