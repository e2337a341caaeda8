package image

import (
	"errors"
	goimage "image"
	"os"
	"path/filepath"
	"testing"

	"github.com/0x0420b/Everlook/internal/graphics"
	"github.com/0x0420b/Everlook/internal/graphics/device"
	"github.com/0x0420b/Everlook/internal/graphics/render"
)

const testShaderDir = "assets-test/shaders"

// stubSource is a Source with fixed path and resolution.
type stubSource struct {
	path   string
	width  int
	height int
}

func (s stubSource) Path() string           { return s.path }
func (s stubSource) Resolution() (int, int) { return s.width, s.height }

func newTestCache(rec *device.Recorder) *render.Cache {
	return render.NewCache(rec, testShaderDir, func(path string) (*goimage.RGBA, error) {
		return goimage.NewRGBA(goimage.Rect(0, 0, 64, 64)), nil
	})
}

func testContext() render.Context {
	camera := graphics.NewCamera(900, 600)
	return render.Context{
		Camera: camera,
		View:   camera.GetViewMatrix(),
		Proj:   camera.GetProjectionMatrix(graphics.Orthographic),
	}
}

func TestRenderBeforeInitialize(t *testing.T) {
	rec := device.NewRecorder()
	r := New(rec, newTestCache(rec), stubSource{"textures/icon.png", 64, 64})

	if err := r.Render(testContext()); err != nil {
		t.Fatalf("Expected silent skip before initialization, got %v", err)
	}
	if rec.Stats.DrawCalls != 0 {
		t.Errorf("Expected no draw calls before initialization, got %d", rec.Stats.DrawCalls)
	}
}

func TestInitializeIdempotent(t *testing.T) {
	rec := device.NewRecorder()
	r := New(rec, newTestCache(rec), stubSource{"textures/icon.png", 64, 64})

	if err := r.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	if err := r.Initialize(); err != nil {
		t.Fatalf("Failed to initialize second time: %v", err)
	}

	// Vertex, UV and index buffers once each.
	if rec.Stats.BufferUploads != 3 {
		t.Errorf("Expected 3 buffer uploads, got %d", rec.Stats.BufferUploads)
	}
	if rec.Stats.TextureUploads != 1 {
		t.Errorf("Expected 1 texture upload, got %d", rec.Stats.TextureUploads)
	}
	if rec.Stats.Compiles != 1 {
		t.Errorf("Expected 1 shader compile, got %d", rec.Stats.Compiles)
	}
	if !r.Initialized() {
		t.Error("Expected renderable to report initialized")
	}
}

func TestRenderDrawsOneQuad(t *testing.T) {
	rec := device.NewRecorder()
	r := New(rec, newTestCache(rec), stubSource{"textures/icon.png", 64, 64})
	if err := r.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if err := r.Render(testContext()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if rec.Stats.DrawCalls != 1 {
		t.Errorf("Expected exactly 1 draw call, got %d", rec.Stats.DrawCalls)
	}
	if rec.Stats.DrawnIndices != 6 {
		t.Errorf("Expected 6 indices drawn, got %d", rec.Stats.DrawnIndices)
	}
	if rec.Stats.AttribEnables != 2 || rec.Stats.AttribDisables != 2 {
		t.Errorf("Expected 2 attribute streams enabled then disabled, got %d/%d",
			rec.Stats.AttribEnables, rec.Stats.AttribDisables)
	}
	if len(rec.Enabled) != 0 {
		t.Errorf("Expected no attribute state left enabled, got %v", rec.Enabled)
	}
}

func TestSharedTextureAcrossRenderables(t *testing.T) {
	rec := device.NewRecorder()
	cache := newTestCache(rec)

	first := New(rec, cache, stubSource{"textures/icon.png", 64, 64})
	second := New(rec, cache, stubSource{"textures/icon.png", 64, 64})

	if err := first.Initialize(); err != nil {
		t.Fatalf("Failed to initialize first: %v", err)
	}
	if err := second.Initialize(); err != nil {
		t.Fatalf("Failed to initialize second: %v", err)
	}

	if rec.Stats.TextureUploads != 1 {
		t.Errorf("Expected texture shared via cache (1 upload), got %d", rec.Stats.TextureUploads)
	}
	if rec.Stats.Compiles != 1 {
		t.Errorf("Expected shader shared via cache (1 compile), got %d", rec.Stats.Compiles)
	}
}

func TestRenderReacquiresInvalidatedTexture(t *testing.T) {
	rec := device.NewRecorder()
	cache := newTestCache(rec)
	r := New(rec, cache, stubSource{"textures/icon.png", 64, 64})
	if err := r.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	if err := r.Render(testContext()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// A file change retires the texture; the next flush releases it.
	cache.Invalidate("textures/icon.png")
	cache.FlushInvalidated()

	if err := r.Render(testContext()); err != nil {
		t.Fatalf("Render after invalidation failed: %v", err)
	}
	if rec.Stats.TextureUploads != 2 {
		t.Errorf("Expected a fresh upload after invalidation, got %d", rec.Stats.TextureUploads)
	}
	if rec.Stats.DrawCalls != 2 {
		t.Errorf("Expected both frames drawn, got %d draw calls", rec.Stats.DrawCalls)
	}
}

func TestDisposeReleasesOnlyOwnedBuffers(t *testing.T) {
	rec := device.NewRecorder()
	cache := newTestCache(rec)
	r := New(rec, cache, stubSource{"textures/icon.png", 64, 64})
	if err := r.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if err := r.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	if err := r.Dispose(); err != nil {
		t.Fatalf("Second dispose failed: %v", err)
	}

	// Three owned buffers deleted once; the cached texture and shader stay.
	if rec.Stats.Deletes != 3 {
		t.Errorf("Expected 3 deletes, got %d", rec.Stats.Deletes)
	}

	texture, err := cache.GetTexture("textures/icon.png")
	if err != nil {
		t.Fatalf("Failed to get texture from cache: %v", err)
	}
	if texture.Released() {
		t.Error("Expected cached texture to stay live after renderable disposal")
	}
}

func TestUseAfterDispose(t *testing.T) {
	rec := device.NewRecorder()
	r := New(rec, newTestCache(rec), stubSource{"textures/icon.png", 64, 64})
	if err := r.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	if err := r.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}

	if err := r.Render(testContext()); !errors.Is(err, render.ErrDisposed) {
		t.Errorf("Expected ErrDisposed from Render, got %v", err)
	}
	if err := r.Initialize(); !errors.Is(err, render.ErrDisposed) {
		t.Errorf("Expected ErrDisposed from Initialize, got %v", err)
	}
}

func TestMain(m *testing.M) {
	dir := filepath.Join(testShaderDir, render.ShaderPlainImage.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(err)
	}
	sources := map[string]string{
		render.ShaderPlainImage.VertexPath(testShaderDir):   "void main() {}",
		render.ShaderPlainImage.FragmentPath(testShaderDir): "void main() {}",
	}
	for path, content := range sources {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			panic(err)
		}
	}

	exitCode := m.Run()
	os.RemoveAll("assets-test")
	os.Exit(exitCode)
}
