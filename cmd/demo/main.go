package main

import (
	"flag"
	"fmt"
	"time"

	"glyphlight/controls"
	"glyphlight/core"
	"glyphlight/glyph"
	"glyphlight/renderer"
	"glyphlight/scene"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	window, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.WindowWidth,
		Height:    cfg.WindowHeight,
		Title:     cfg.WindowTitle,
		Resizable: true,
		VSync:     cfg.VSync,
	})
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		return
	}
	defer window.Destroy()

	renderEngine, err := renderer.NewRenderEngine(window, cfg)
	if err != nil {
		fmt.Printf("Failed to create render engine: %v\n", err)
		return
	}
	defer renderEngine.Destroy()

	// Glyph meshes are generated off the main thread. Input callbacks are
	// installed now so events arriving before the scene exists are safely
	// ignored rather than dropped on the floor by GLFW.
	letterCh, digitCh := startMeshGeneration(cfg)

	controller := controls.NewController(nil, renderEngine, cfg.MoveSpeed)
	window.SetFramebufferSizeCallback(controller.HandleResize)
	window.SetKeyCallback(func(key int) {
		if key == core.KeyEscape {
			window.RequestClose()
			return
		}
		controller.HandleKey(rune(key))
	})

	letterRes := <-letterCh
	if letterRes.Err != nil {
		fmt.Printf("Failed to build letter mesh %q: %v\n", cfg.Letter, letterRes.Err)
		return
	}
	digitRes := <-digitCh
	if digitRes.Err != nil {
		fmt.Printf("Failed to build digit mesh %q: %v\n", cfg.Digit, digitRes.Err)
		return
	}
	fmt.Printf("Glyph meshes ready: %q (%d verts), %q (%d verts)\n",
		cfg.Letter, len(letterRes.Mesh.Vertices),
		cfg.Digit, len(digitRes.Mesh.Vertices))

	s, rig := scene.Build(cfg, letterRes.Mesh, digitRes.Mesh)
	renderEngine.SetScene(s)
	controller.AttachRig(rig)

	// The framebuffer may be larger than the requested window size on
	// HiDPI displays; size everything to the real pixel dimensions.
	fbW, fbH := window.GetFramebufferSize()
	controller.HandleResize(fbW, fbH)

	updater := scene.NewFrameUpdater(rig, cfg.RotationStep)

	fmt.Println("Controls: W/S light cube up/down, A/D camera left/right, ESC quit")

	start := time.Now()
	lastStatus := start
	frames := 0

	for !window.ShouldClose() {
		window.PollEvents()

		updater.Advance(time.Since(start))

		if err := renderEngine.Render(); err != nil {
			fmt.Printf("Render failed: %v\n", err)
			return
		}
		renderEngine.Present()

		frames++
		if now := time.Now(); now.Sub(lastStatus) >= time.Second {
			fps := float64(frames) / now.Sub(lastStatus).Seconds()
			cubeY := rig.LightCube.GetWorldPosition().Y
			camX := rig.Camera.Position.X
			objects, vertices, triangles := renderEngine.DrawStats()
			fmt.Printf("FPS: %3.0f | cube Y %+.2f | camera X %+.2f | %d objects, %d verts, %d tris\n",
				fps, cubeY, camX, objects, vertices, triangles)
			window.SetTitle(fmt.Sprintf("%s | %.0f FPS", cfg.WindowTitle, fps))
			frames = 0
			lastStatus = now
		}
	}
}

// startMeshGeneration kicks off letter and digit mesh generation
// concurrently. A glTF path in the config takes precedence over font
// extrusion. Each channel delivers exactly one result.
func startMeshGeneration(cfg core.Config) (<-chan glyph.Result, <-chan glyph.Result) {
	gen := func(meshPath, text string) <-chan glyph.Result {
		if meshPath != "" {
			ch := make(chan glyph.Result, 1)
			go func() {
				mesh, err := glyph.LoadMeshFile(meshPath)
				ch <- glyph.Result{Mesh: mesh, Err: err}
			}()
			return ch
		}
		if text == "" {
			ch := make(chan glyph.Result, 1)
			ch <- glyph.Result{Err: fmt.Errorf("no glyph character configured")}
			return ch
		}
		// One Typeface per glyph: the sfnt buffer inside is not safe for
		// concurrent use.
		face, err := glyph.Load(cfg.FontPath)
		if err != nil {
			ch := make(chan glyph.Result, 1)
			ch <- glyph.Result{Err: err}
			return ch
		}
		return glyph.GenerateAsync(face, []rune(text)[0], glyph.DefaultMeshOptions())
	}
	return gen(cfg.GlyphMeshLetter, cfg.Letter), gen(cfg.GlyphMeshDigit, cfg.Digit)
}
