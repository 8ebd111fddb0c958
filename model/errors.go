package model

import "github.com/pkg/errors"

var (
	// ErrInvalidSize is returned by Create for a non-positive width or height.
	ErrInvalidSize = errors.New("invalid world size")
	// ErrOutOfMemory is returned by Create when a grid cannot be allocated.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrNotCreated reports an operation on a world that does not exist.
	ErrNotCreated = errors.New("world not created")
	// ErrBufferMismatch reports a pixel buffer that does not fit the world.
	ErrBufferMismatch = errors.New("pixel buffer does not match world size")
)

// allocError reports an allocator failure as ErrOutOfMemory while keeping
// the allocator's own error reachable through Unwrap.
type allocError struct {
	cause error
}

func (e *allocError) Error() string {
	return ErrOutOfMemory.Error() + ": " + e.cause.Error()
}

func (e *allocError) Is(target error) bool {
	return target == ErrOutOfMemory
}

func (e *allocError) Unwrap() error {
	return e.cause
}

// outOfMemory returns err unchanged when it already reports ErrOutOfMemory
func outOfMemory(err error) error {
	if errors.Is(err, ErrOutOfMemory) {
		return err
	}
	return errors.WithStack(&allocError{cause: err})
}
