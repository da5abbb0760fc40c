package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidHandle  = errors.New("ecs: component handle not registered")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle names a component kind. Stores hold *T values.
type ComponentHandle[T any] struct {
	id   ComponentID
	name string
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1)), name: name}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Name() string {
	return h.name
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}
