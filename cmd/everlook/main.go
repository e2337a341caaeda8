// Command everlook opens a viewport on a single game-asset file: images are
// drawn as flat quads, anything model-like shows its bounding extents.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/0x0420b/Everlook/internal/assets"
	"github.com/0x0420b/Everlook/internal/graphics/device"
	"github.com/0x0420b/Everlook/internal/graphics/render"
	"github.com/0x0420b/Everlook/internal/graphics/renderables/boundingbox"
	imagerender "github.com/0x0420b/Everlook/internal/graphics/renderables/image"
	"github.com/0x0420b/Everlook/internal/graphics/viewport"
	"github.com/0x0420b/Everlook/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

const (
	winWidth  = 900
	winHeight = 600

	shadersDir = "assets/shaders"

	// Two missed vsync intervals at 60Hz; frames past this get a profile line.
	slowFrame = 0.033
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <asset file>\n", os.Args[0])
		os.Exit(2)
	}
	assetPath := os.Args[1]

	if err := run(assetPath); err != nil {
		log.Fatal(err)
	}
	closer.Close()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(winWidth, winHeight, "Everlook", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

func run(assetPath string) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}
	closer.Bind(glfw.Terminate)

	window, err := setupWindow()
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	api, err := device.NewGL()
	if err != nil {
		return err
	}
	log.Printf("OpenGL %s", api.Version())

	cache := render.NewCache(api, shadersDir, assets.LoadImage)
	closer.Bind(cache.Dispose)

	vp := viewport.New(api, winWidth, winHeight)
	closer.Bind(func() {
		if err := vp.Dispose(); err != nil {
			log.Printf("disposing viewport: %v", err)
		}
	})

	watcher, err := assets.NewWatcher(cache)
	if err != nil {
		return fmt.Errorf("starting asset watcher: %w", err)
	}
	closer.Bind(func() { watcher.Close() })

	if err := populateScene(api, cache, vp, watcher, assetPath); err != nil {
		return err
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		vp.SetViewport(width, height)
	})

	last := time.Now()
	for !window.ShouldClose() {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		profiling.ResetFrame()
		cache.FlushInvalidated()
		if err := vp.RenderFrame(dt); err != nil {
			return err
		}
		if dt > slowFrame {
			log.Printf("slow frame %.1fms, hottest spans: %s", dt*1000, profiling.TopN(3))
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func populateScene(api device.API, cache *render.Cache, vp *viewport.Viewport, watcher *assets.Watcher, assetPath string) error {
	kind, err := assets.Detect(assetPath)
	if err != nil {
		return err
	}
	log.Printf("%s: detected %s asset", assetPath, kind)

	switch kind {
	case assets.KindImage:
		source, err := assets.NewImageFile(assetPath)
		if err != nil {
			return err
		}
		actor := imagerender.New(api, cache, source)
		if err := vp.Add(actor); err != nil {
			return err
		}
		if err := watcher.Watch(assetPath); err != nil {
			log.Printf("watching %s: %v", assetPath, err)
		}

		// A second placement of the same quad, offset beside the original:
		// one GPU upload, two draw positions.
		width, _ := source.Resolution()
		offset := render.NewTransform(
			mgl32.Vec3{float32(width) + 16, 0, 0},
			mgl32.QuatIdent(),
			mgl32.Vec3{1, 1, 1},
		)
		instance, err := render.NewActorInstance(actor, offset)
		if err != nil {
			return err
		}
		return vp.Add(instance)

	case assets.KindAudio:
		return fmt.Errorf("%s: audio playback is handled outside the viewport", assetPath)

	default:
		// Until a model decoder hands us geometry, show unit extents.
		box := boundingbox.New(api, cache, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
		vp.Camera().Position = mgl32.Vec3{3, 2, 3}
		return vp.Add(box)
	}
}
