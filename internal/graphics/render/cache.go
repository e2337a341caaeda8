package render

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/0x0420b/Everlook/internal/graphics/device"
)

// ImageLoader decodes the file at path into RGBA pixel data. Decoding is
// CPU-side work and may be backed by any decoder; the cache only uploads.
type ImageLoader func(path string) (*image.RGBA, error)

// Cache is the shared registry for GPU-expensive objects: compiled shader
// programs keyed by kind and uploaded textures keyed by source path. Each
// key is uploaded at most once for the cache's lifetime, and every caller
// with the same key sees the same handle.
//
// The cache owns the handles it returns. Renderables must never release
// them; Dispose at process shutdown does.
type Cache struct {
	api       device.API
	shaderDir string
	loadImage ImageLoader

	mu       sync.RWMutex
	shaders  map[ShaderKind]*device.Handle
	textures map[string]*device.Handle

	// Handles dropped by Invalidate, awaiting release on the render thread.
	retired []*device.Handle
}

func NewCache(api device.API, shaderDir string, loadImage ImageLoader) *Cache {
	return &Cache{
		api:       api,
		shaderDir: shaderDir,
		loadImage: loadImage,
		shaders:   make(map[ShaderKind]*device.Handle),
		textures:  make(map[string]*device.Handle),
	}
}

// GetShader returns the shared program handle for the given kind, compiling
// and linking it on first request. A failed compile leaves no entry behind,
// so a later call retries from the sources on disk.
func (c *Cache) GetShader(kind ShaderKind) (*device.Handle, error) {
	c.mu.RLock()
	if h, ok := c.shaders[kind]; ok {
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if h, ok := c.shaders[kind]; ok {
		return h, nil
	}

	vertexSrc, err := os.ReadFile(kind.VertexPath(c.shaderDir))
	if err != nil {
		return nil, fmt.Errorf("shader %v: %w", kind, err)
	}
	fragmentSrc, err := os.ReadFile(kind.FragmentPath(c.shaderDir))
	if err != nil {
		return nil, fmt.Errorf("shader %v: %w", kind, err)
	}

	program, err := c.api.CompileProgram(string(vertexSrc), string(fragmentSrc))
	if err != nil {
		return nil, fmt.Errorf("shader %v: %w", kind, err)
	}

	h := device.NewHandle(c.api, device.ProgramHandle, program, device.StaticDraw)
	c.shaders[kind] = h
	return h, nil
}

// GetTexture returns the shared texture handle for the given source path,
// decoding and uploading it on first request. A failed decode or upload
// leaves no entry behind.
func (c *Cache) GetTexture(path string) (*device.Handle, error) {
	c.mu.RLock()
	if h, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if h, ok := c.textures[path]; ok {
		return h, nil
	}

	rgba, err := c.loadImage(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}

	width := rgba.Rect.Size().X
	height := rgba.Rect.Size().Y
	texture := c.api.CreateTexture()
	if err := c.api.UploadTexture(texture, width, height, rgba.Pix, device.MipLevels(width, height)); err != nil {
		c.api.DeleteTexture(texture)
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}

	h := device.NewHandle(c.api, device.TextureHandle, texture, device.StaticDraw)
	c.textures[path] = h
	return h, nil
}

// Invalidate drops the texture entry for path so the next GetTexture
// re-uploads from the file's current contents. It issues no GPU calls and
// is safe from any goroutine: the retired GPU object is released by the
// next FlushInvalidated on the render thread, after which holders of the
// old handle observe it as released and re-acquire through the cache.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.textures[path]; ok {
		c.retired = append(c.retired, h)
		delete(c.textures, path)
	}
}

// FlushInvalidated releases the GPU objects retired by Invalidate. Must be
// called on the render thread, typically at the start of a frame.
func (c *Cache) FlushInvalidated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.retired {
		h.Release()
	}
	c.retired = nil
}

// Dispose releases every cached handle. Called once at process shutdown.
func (c *Cache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for kind, h := range c.shaders {
		h.Release()
		delete(c.shaders, kind)
	}
	for path, h := range c.textures {
		h.Release()
		delete(c.textures, path)
	}
	for _, h := range c.retired {
		h.Release()
	}
	c.retired = nil
}
