package main

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"splatviewer/internal/config"
	"splatviewer/internal/math3"
	"splatviewer/internal/render"
	"splatviewer/internal/utils"
)

// Discrete per-keypress camera steps, in world units.
const (
	panStep  = float32(0.1)
	zoomStep = float32(0.25)
)

type action int

const (
	actionNone action = iota
	actionQuit
)

// runWindow opens the interactive viewer. The renderer core produces frames
// on demand; the window is just one consumer of Frame(), uploading the pixel
// buffer into a raylib texture every tick.
func runWindow(renderer *render.Renderer, cfg *config.Config) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.InitWindow(windowWidth, windowHeight, "splatviewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	width, height := renderer.Size()

	frame, err := renderer.Frame()
	if err != nil {
		utils.Error("Initial render failed: %v", err)
		return
	}

	img := rl.NewImage(frame, int32(width), int32(height), 1, rl.UncompressedR8g8b8a8)
	texture := rl.LoadTextureFromImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, width*height)

	for !rl.WindowShouldClose() {
		if handleInput(renderer, cfg) == actionQuit {
			utils.Info("User pressed q, quitting")
			break
		}

		frame, err = renderer.Frame()
		if err != nil {
			utils.Error("Render failed: %v", err)
			break
		}

		framePixels(frame, pixels)
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.DrawTexture(texture, 0, 0, rl.White)
		rl.EndDrawing()
	}
}

// handleInput maps discrete key presses to camera intents.
//
// Arrows pan along world X/Y, comma/period pan along world Z, W/S and the
// mouse wheel zoom along the view direction, F2 saves a screenshot, F5
// forces a recompute on the next frame.
func handleInput(renderer *render.Renderer, cfg *config.Config) action {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return actionQuit
	}

	switch {
	case rl.IsKeyPressed(rl.KeyRight):
		renderer.Translate(math3.V3(panStep, 0, 0))
	case rl.IsKeyPressed(rl.KeyLeft):
		renderer.Translate(math3.V3(-panStep, 0, 0))
	case rl.IsKeyPressed(rl.KeyUp):
		renderer.Translate(math3.V3(0, panStep, 0))
	case rl.IsKeyPressed(rl.KeyDown):
		renderer.Translate(math3.V3(0, -panStep, 0))
	case rl.IsKeyPressed(rl.KeyComma):
		renderer.Translate(math3.V3(0, 0, -panStep))
	case rl.IsKeyPressed(rl.KeyPeriod):
		renderer.Translate(math3.V3(0, 0, panStep))
	case rl.IsKeyPressed(rl.KeyW):
		renderer.Zoom(zoomStep)
	case rl.IsKeyPressed(rl.KeyS):
		renderer.Zoom(-zoomStep)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		renderer.Zoom(wheel * zoomStep)
	}

	if rl.IsKeyPressed(rl.KeyF5) {
		renderer.Invalidate()
	}

	if rl.IsKeyPressed(rl.KeyF2) {
		if _, err := renderer.SaveScreenshot(cfg.Screenshot.ScreenshotDirectoryPath); err != nil {
			utils.Error("Screenshot failed: %v", err)
		}
	}

	return actionNone
}

// framePixels converts the renderer's flat RGBA bytes into raylib's pixel
// format for UpdateTexture.
func framePixels(frame []byte, pixels []color.RGBA) {
	for i := range pixels {
		pixels[i] = color.RGBA{
			R: frame[4*i],
			G: frame[4*i+1],
			B: frame[4*i+2],
			A: frame[4*i+3],
		}
	}
}
