package render

import "github.com/0x0420b/Everlook/internal/graphics"

// ActorInstance draws an existing actor at its own transform without
// duplicating any GPU state. For the duration of one render call the
// instance's transform is swapped onto the target, then the target's prior
// transform is restored on every exit path.
//
// The swap is not reentrant: only one render may be in flight against a
// given target at a time, which the single render thread guarantees.
type ActorInstance struct {
	target      Actor
	transform   Transform
	initialized bool
}

// NewActorInstance wraps target, drawing it at the given transform. A
// transform that never went through a constructor (zero rotation) is
// rejected rather than swapped onto the target.
func NewActorInstance(target Actor, transform Transform) (*ActorInstance, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if transform.Rotation().Len() == 0 {
		return nil, ErrZeroTransform
	}
	return &ActorInstance{target: target, transform: transform}, nil
}

// NewActorInstanceAt wraps target, drawing it where the target currently is.
func NewActorInstanceAt(target Actor) (*ActorInstance, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	transform := target.Transform()
	if transform.Rotation().Len() == 0 {
		return nil, ErrZeroTransform
	}
	return &ActorInstance{target: target, transform: transform}, nil
}

// Initialize marks the instance ready. The target owns all GPU work.
func (a *ActorInstance) Initialize() error {
	a.initialized = true
	return nil
}

func (a *ActorInstance) Render(ctx Context) error {
	if !a.initialized {
		return nil
	}

	prior := a.target.Transform()
	a.target.SetTransform(a.transform)
	defer a.target.SetTransform(prior)

	return a.target.Render(ctx)
}

// Dispose always fails: the instance owns nothing, and tearing down the
// shared target through a proxy would pull it out from under every other
// instance.
func (a *ActorInstance) Dispose() error {
	return ErrInstanceDispose
}

func (a *ActorInstance) Static() bool      { return a.target.Static() }
func (a *ActorInstance) Initialized() bool { return a.initialized }

func (a *ActorInstance) Projection() graphics.ProjectionKind { return a.target.Projection() }

func (a *ActorInstance) Transform() Transform     { return a.transform }
func (a *ActorInstance) SetTransform(t Transform) { a.transform = t }

// Target returns the actor this instance proxies.
func (a *ActorInstance) Target() Actor { return a.target }
