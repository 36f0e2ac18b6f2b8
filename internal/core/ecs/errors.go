package ecs

import "github.com/rotisserie/eris"

var (
	// ErrInvalidEntity is returned when an operation targets the zero handle
	// or an id that is not currently alive.
	ErrInvalidEntity = eris.New("invalid entity")

	// ErrComponentNotFound is returned by GetComponent when the entity is
	// alive but holds no component of the requested type.
	ErrComponentNotFound = eris.New("component not found")

	// ErrUnregisteredComponentType means no storage exists for a component
	// type. Reaching it from Flush is a programming error and panics.
	ErrUnregisteredComponentType = eris.New("unregistered component type")

	// ErrUnregisteredSystem is returned when configuring a system type that
	// was never passed to RegisterSystem.
	ErrUnregisteredSystem = eris.New("unregistered system")
)
