package render

import "errors"

// Domain errors for mounting and driving the frame loop.
var (
	// ErrNoContext indicates the surface could not provide a drawing context.
	ErrNoContext = errors.New("render: drawing context unavailable")

	// ErrInvalidSize indicates a surface dimension that is not positive.
	ErrInvalidSize = errors.New("render: surface size must be positive")
)
