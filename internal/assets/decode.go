// Package assets is the CPU-side decode boundary: it turns asset files into
// pixel buffers and identities the rendering core can consume. Nothing here
// touches the GPU, so it is safe to call off the render thread.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// LoadImage decodes the image file at path into tightly-packed RGBA pixels.
func LoadImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{0, 0}, draw.Src)
	return rgba, nil
}

// ImageFile is a file-backed image source: its path doubles as the render
// cache key, and its dimensions come from the image header without decoding
// the pixel data.
type ImageFile struct {
	path   string
	width  int
	height int
}

func NewImageFile(path string) (*ImageFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header %s: %w", path, err)
	}

	return &ImageFile{path: path, width: config.Width, height: config.Height}, nil
}

func (f *ImageFile) Path() string { return f.path }

func (f *ImageFile) Resolution() (width, height int) {
	return f.width, f.height
}
