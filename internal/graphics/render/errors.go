package render

import "errors"

var (
	// ErrDisposed reports a call on a renderable whose GPU resources have
	// already been released.
	ErrDisposed = errors.New("renderable already disposed")

	// ErrInstanceDispose reports an attempt to dispose an actor instance.
	// Instances own no GPU resources; dispose the source actor instead.
	ErrInstanceDispose = errors.New("cannot dispose an actor instance; dispose the source actor")

	// ErrNilTarget reports an actor instance constructed without a target.
	ErrNilTarget = errors.New("actor instance requires a target actor")

	// ErrZeroTransform reports an actor instance constructed with an
	// uninitialized transform; its zero rotation cannot be normalized and
	// would degenerate the target's model matrix during the swap.
	ErrZeroTransform = errors.New("actor instance requires an initialized transform")
)
