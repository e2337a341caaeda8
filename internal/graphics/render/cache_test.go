package render

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/0x0420b/Everlook/internal/graphics/device"
)

const testShaderDir = "assets-test/shaders"

func testLoader(calls *int) ImageLoader {
	return func(path string) (*image.RGBA, error) {
		*calls++
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	}
}

func TestShaderSharedAndCompiledOnce(t *testing.T) {
	rec := device.NewRecorder()
	cache := NewCache(rec, testShaderDir, nil)

	first, err := cache.GetShader(ShaderPlainImage)
	if err != nil {
		t.Fatalf("Failed to get shader: %v", err)
	}
	second, err := cache.GetShader(ShaderPlainImage)
	if err != nil {
		t.Fatalf("Failed to get shader second time: %v", err)
	}

	if first != second {
		t.Error("Expected the same shader handle from cache")
	}
	if rec.Stats.Compiles != 1 {
		t.Errorf("Expected exactly 1 compile, got %d", rec.Stats.Compiles)
	}
}

func TestShaderKindsAreDistinct(t *testing.T) {
	rec := device.NewRecorder()
	cache := NewCache(rec, testShaderDir, nil)

	img, err := cache.GetShader(ShaderPlainImage)
	if err != nil {
		t.Fatalf("Failed to get image shader: %v", err)
	}
	box, err := cache.GetShader(ShaderBoundingBox)
	if err != nil {
		t.Fatalf("Failed to get bounding box shader: %v", err)
	}

	if img == box {
		t.Error("Expected distinct handles per shader kind")
	}
	if rec.Stats.Compiles != 2 {
		t.Errorf("Expected 2 compiles, got %d", rec.Stats.Compiles)
	}
}

func TestShaderMissingSources(t *testing.T) {
	rec := device.NewRecorder()
	cache := NewCache(rec, testShaderDir, nil)

	// No fixture files exist for the model kind.
	if _, err := cache.GetShader(ShaderModel); err == nil {
		t.Fatal("Expected error for missing shader sources")
	}
	if rec.Stats.Compiles != 0 {
		t.Errorf("Expected no compiles, got %d", rec.Stats.Compiles)
	}
}

func TestShaderCompileFailureIsRetryable(t *testing.T) {
	rec := device.NewRecorder()
	cache := NewCache(rec, testShaderDir, nil)

	compileErr := errors.New("link failed")
	rec.FailCompile = compileErr
	if _, err := cache.GetShader(ShaderPlainImage); !errors.Is(err, compileErr) {
		t.Fatalf("Expected compile failure to propagate, got %v", err)
	}

	// The failure must not poison the entry.
	rec.FailCompile = nil
	h, err := cache.GetShader(ShaderPlainImage)
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if h.Released() {
		t.Error("Expected a live handle after retry")
	}
	if rec.Stats.Compiles != 1 {
		t.Errorf("Expected exactly 1 successful compile, got %d", rec.Stats.Compiles)
	}
}

func TestTextureSharedAndUploadedOnce(t *testing.T) {
	rec := device.NewRecorder()
	calls := 0
	cache := NewCache(rec, testShaderDir, testLoader(&calls))

	first, err := cache.GetTexture("textures/stone.png")
	if err != nil {
		t.Fatalf("Failed to get texture: %v", err)
	}
	second, err := cache.GetTexture("textures/stone.png")
	if err != nil {
		t.Fatalf("Failed to get texture second time: %v", err)
	}

	if first != second {
		t.Error("Expected the same texture handle from cache")
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 decode, got %d", calls)
	}
	if rec.Stats.TextureUploads != 1 {
		t.Errorf("Expected exactly 1 upload, got %d", rec.Stats.TextureUploads)
	}
}

func TestTextureUploadFailureIsRetryable(t *testing.T) {
	rec := device.NewRecorder()
	calls := 0
	cache := NewCache(rec, testShaderDir, testLoader(&calls))

	uploadErr := errors.New("out of memory")
	rec.FailUpload = uploadErr
	if _, err := cache.GetTexture("textures/stone.png"); !errors.Is(err, uploadErr) {
		t.Fatalf("Expected upload failure to propagate, got %v", err)
	}

	rec.FailUpload = nil
	if _, err := cache.GetTexture("textures/stone.png"); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if rec.Stats.TextureUploads != 1 {
		t.Errorf("Expected exactly 1 successful upload, got %d", rec.Stats.TextureUploads)
	}
}

func TestInvalidateForcesReupload(t *testing.T) {
	rec := device.NewRecorder()
	calls := 0
	cache := NewCache(rec, testShaderDir, testLoader(&calls))

	stale, err := cache.GetTexture("textures/stone.png")
	if err != nil {
		t.Fatalf("Failed to get texture: %v", err)
	}

	// Invalidation may come from the watcher goroutine, so it must not touch
	// the GPU itself; the stale object is only retired.
	cache.Invalidate("textures/stone.png")
	if stale.Released() {
		t.Error("Expected invalidated handle to stay live until the flush")
	}
	if rec.Stats.Deletes != 0 {
		t.Errorf("Expected no GPU deletes from Invalidate, got %d", rec.Stats.Deletes)
	}

	fresh, err := cache.GetTexture("textures/stone.png")
	if err != nil {
		t.Fatalf("Failed to get texture after invalidate: %v", err)
	}
	if fresh == stale {
		t.Error("Expected a new handle after invalidate")
	}
	if rec.Stats.TextureUploads != 2 {
		t.Errorf("Expected 2 uploads across invalidation, got %d", rec.Stats.TextureUploads)
	}

	cache.FlushInvalidated()
	if !stale.Released() {
		t.Error("Expected retired handle released by the flush")
	}
	if fresh.Released() {
		t.Error("Expected current handle untouched by the flush")
	}
}

func TestDisposeReleasesEverything(t *testing.T) {
	rec := device.NewRecorder()
	calls := 0
	cache := NewCache(rec, testShaderDir, testLoader(&calls))

	shader, err := cache.GetShader(ShaderPlainImage)
	if err != nil {
		t.Fatalf("Failed to get shader: %v", err)
	}
	texture, err := cache.GetTexture("textures/stone.png")
	if err != nil {
		t.Fatalf("Failed to get texture: %v", err)
	}

	cache.Dispose()

	if !shader.Released() || !texture.Released() {
		t.Error("Expected all cached handles released after Dispose")
	}
}

func TestMain(m *testing.M) {
	// Create dummy shader sources for testing
	for _, kind := range []ShaderKind{ShaderPlainImage, ShaderBoundingBox} {
		dir := filepath.Join(testShaderDir, kind.String())
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
		writeTestFile(kind.VertexPath(testShaderDir), "void main() {}")
		writeTestFile(kind.FragmentPath(testShaderDir), "void main() {}")
	}

	exitCode := m.Run()
	os.RemoveAll("assets-test")
	os.Exit(exitCode)
}

func writeTestFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		panic(err)
	}
}
