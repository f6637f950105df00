package list

import "github.com/pkg/errors"

var (
	// ErrInvalidHandle is returned when operation is executed on destroyed or nil list.
	ErrInvalidHandle = errors.New("invalid list handle")

	// ErrEmpty is returned when edge element is requested from an empty list.
	ErrEmpty = errors.New("list is empty")

	// ErrIndexOutOfRange is returned when index does not point to a valid position.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidItemSize is returned when list is created with item size which is zero or too large.
	ErrInvalidItemSize = errors.New("invalid item size")

	// ErrNilVisitor is returned when traversal is requested without visitor.
	ErrNilVisitor = errors.New("visitor is nil")
)
