package ecs

import (
	"errors"
	"fmt"
)

// Contract violations. World operations panic with an error wrapping one of
// these; they indicate a caller bug, not a runtime condition.
var (
	ErrInvalidEntity      = errors.New("ecs: invalid or stale entity")
	ErrDuplicateComponent = errors.New("ecs: entity already has component")
	ErrMissingComponent   = errors.New("ecs: entity does not have component")
	ErrUnknownComponent   = errors.New("ecs: unknown component type")
	ErrDuplicateName      = errors.New("ecs: component name already registered")
)

func violation(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
