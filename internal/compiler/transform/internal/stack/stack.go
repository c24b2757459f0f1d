package stack

type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{
		items: make([]T, 0),
	}
}

func (s *Stack[T]) Empty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Peek returns the last pushed item. ok is false when the stack is empty.
func (s *Stack[T]) Peek() (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}

	return s.items[len(s.items)-1], true
}

// Pop returns and removes the last pushed item. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}

	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]

	return last, true
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}
