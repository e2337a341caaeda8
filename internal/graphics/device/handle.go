package device

import (
	"errors"
	"fmt"
)

// ErrReleased reports use of a handle after its GPU object was released.
var ErrReleased = errors.New("GPU handle already released")

// HandleKind identifies which family of GPU object a Handle owns.
type HandleKind int

const (
	VertexBufferHandle HandleKind = iota
	IndexBufferHandle
	TextureHandle
	ProgramHandle
)

func (k HandleKind) String() string {
	switch k {
	case VertexBufferHandle:
		return "vertex buffer"
	case IndexBufferHandle:
		return "index buffer"
	case TextureHandle:
		return "texture"
	case ProgramHandle:
		return "program"
	}
	return "unknown"
}

// Handle owns exactly one native GPU object. It is either live or released;
// the transition is one-way and Release is safe to call more than once.
type Handle struct {
	api      API
	kind     HandleKind
	id       uint32
	usage    Usage
	released bool
}

func NewHandle(api API, kind HandleKind, id uint32, usage Usage) *Handle {
	return &Handle{api: api, kind: kind, id: id, usage: usage}
}

// ID returns the native object name, or ErrReleased.
func (h *Handle) ID() (uint32, error) {
	if h.released {
		return 0, fmt.Errorf("%s %d: %w", h.kind, h.id, ErrReleased)
	}
	return h.id, nil
}

func (h *Handle) Kind() HandleKind { return h.kind }
func (h *Handle) Usage() Usage     { return h.usage }
func (h *Handle) Released() bool   { return h.released }

// Bind makes the underlying object current for its kind.
func (h *Handle) Bind() error {
	if h.released {
		return fmt.Errorf("%s %d: %w", h.kind, h.id, ErrReleased)
	}
	switch h.kind {
	case VertexBufferHandle:
		h.api.BindBuffer(ArrayBuffer, h.id)
	case IndexBufferHandle:
		h.api.BindBuffer(ElementArrayBuffer, h.id)
	case TextureHandle:
		h.api.BindTexture(h.id)
	case ProgramHandle:
		h.api.UseProgram(h.id)
	}
	return nil
}

// Release frees the GPU object. Further calls are no-ops.
func (h *Handle) Release() {
	if h.released {
		return
	}
	switch h.kind {
	case VertexBufferHandle, IndexBufferHandle:
		h.api.DeleteBuffer(h.id)
	case TextureHandle:
		h.api.DeleteTexture(h.id)
	case ProgramHandle:
		h.api.DeleteProgram(h.id)
	}
	h.released = true
}
