// Kernel preview tool - interactive visualization of sampling kernels.
//
// Usage: go run ./cmd/preview
package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/glkernel/config"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	textureSize  = 128
)

var methods = []string{config.MethodPoisson, config.MethodStratified, config.MethodPerlin, config.MethodSimplex}

func defaultParams() PreviewParams {
	return PreviewParams{
		Method:   config.MethodPoisson,
		GridSize: 16,
		Probes:   32,
		MinDist:  0,
		Seed:     12345,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Kernel Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	img := rl.GenImageColor(textureSize, textureSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var view *View
	var viewErr error
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			view, viewErr = Generate(params, textureSize)
			if viewErr == nil && view.Field != nil {
				rl.UpdateTexture(texture, view.Pixels())
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Tiled 2x2 so seams across the wrap are visible
		tile := float32(previewSize) / 2
		for ty := 0; ty < 2; ty++ {
			for tx := 0; tx < 2; tx++ {
				ox := 10 + float32(tx)*tile
				oy := 10 + float32(ty)*tile
				if viewErr == nil {
					drawTile(view, texture, ox, oy, tile)
				}
				rl.DrawRectangleLines(int32(ox), int32(oy), int32(tile), int32(tile), rl.LightGray)
			}
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		statsY := int32(previewSize + 25)
		if viewErr != nil {
			rl.DrawText(fmt.Sprintf("Error: %v", viewErr), 15, statsY, 16, rl.Red)
		} else if view.Field == nil {
			r := view.Report
			rl.DrawText(fmt.Sprintf("Points: %d / %d (%.0f%%)", r.Count, r.Capacity, 100*r.Fill), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Min dist: %.4f  Min pair: %.4f  Mean NN: %.4f", view.MinDist, r.MinNN, r.MeanNN), 15, statsY+20, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Packing: %.3f", r.Packing), 15, statsY+40, 16, rl.DarkGray)
		} else {
			rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f", view.FieldMin, view.FieldMax), 15, statsY, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Kernel Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Method buttons
		for i, m := range methods {
			label := m
			if m == params.Method {
				label = "[" + m + "]"
			}
			bx := panelX + float32(i%2)*130
			by := panelY + float32(i/2)*35
			if gui.Button(rl.Rectangle{X: bx, Y: by, Width: 120, Height: 30}, label) && m != params.Method {
				params.Method = m
				needsRegen = true
			}
		}
		panelY += 80

		// Grid size slider
		rl.DrawText("Grid size (kernel width = height)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newGrid := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"2", "48",
			float32(params.GridSize), 2, 48,
		)
		rl.DrawText(fmt.Sprintf("%d", params.GridSize), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newGrid) != params.GridSize {
			params.GridSize = int(newGrid)
			needsRegen = true
		}
		panelY += 35

		// Probes slider
		rl.DrawText("Probes (candidates per step)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newProbes := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "64",
			float32(params.Probes), 1, 64,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Probes), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newProbes) != params.Probes {
			params.Probes = int(newProbes)
			needsRegen = true
		}
		panelY += 35

		// Min distance slider
		rl.DrawText("Min distance (0 = estimate)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMinDist := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.3",
			params.MinDist, 0, 0.3,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.MinDist), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newMinDist != params.MinDist {
			params.MinDist = newMinDist
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "99999",
			float32(params.Seed), 1, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range params.YAMLLines() {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(params.YAML())
		}

		rl.EndDrawing()
	}
}

// drawTile draws one copy of the kernel with its top-left corner at (ox, oy).
func drawTile(view *View, texture rl.Texture2D, ox, oy, size float32) {
	if view.Field != nil {
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texture.Width), Height: float32(texture.Height)},
			rl.Rectangle{X: ox, Y: oy, Width: size, Height: size},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		return
	}

	radius := float32(view.MinDist) / 2 * size
	for _, p := range view.Points {
		c := rl.Vector2{X: ox + float32(p[0])*size, Y: oy + float32(p[1])*size}
		if view.Method == config.MethodPoisson && radius >= 2 {
			rl.DrawCircleLines(int32(c.X), int32(c.Y), radius, rl.LightGray)
		}
		rl.DrawCircleV(c, 2, rl.DarkBlue)
	}
}
