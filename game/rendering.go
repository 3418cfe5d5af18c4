package game

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rps/render"
)

// Replay button geometry, anchored to the top-right corner.
const (
	buttonWidth  = 120
	buttonHeight = 40
	buttonMargin = 20
)

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(toRL(render.Background))

	g.drawEntities()
	g.drawHUD()

	if label := g.countdown.Label(); label != "" {
		g.drawCentred(label, 80, rl.Yellow)
	}

	if g.sess.Over() {
		g.drawCentred(render.WinnerBanner(g.sess.Last().Winner), 60, rl.White)
		bounds := rl.Rectangle{
			X:      g.screenWidth - buttonWidth - buttonMargin,
			Y:      buttonMargin,
			Width:  buttonWidth,
			Height: buttonHeight,
		}
		if gui.Button(bounds, "Replay") {
			g.replay()
		}
	}

	rl.EndDrawing()
}

// drawEntities renders every visible entity as a coloured disc with its glyph.
func (g *Game) drawEntities() {
	radius := g.spriteSize / 2 * g.camera.Zoom
	fontSize := int32(radius)

	for _, e := range g.sess.Last().Entities {
		if !g.camera.IsVisible(e.Position.X, e.Position.Y, radius/g.camera.Scale()) {
			continue
		}
		x, y := g.camera.WorldToScreen(e.Position.X, e.Position.Y)
		rl.DrawCircle(int32(x), int32(y), radius, toRL(render.KindColor(e.Kind)))

		glyph := string(render.Glyph(e.Kind))
		w := rl.MeasureText(glyph, fontSize)
		rl.DrawText(glyph, int32(x)-w/2, int32(y)-fontSize/2, fontSize, rl.Black)
	}
}

// drawHUD renders the per-kind counters, tick and speed.
func (g *Game) drawHUD() {
	y := int32(10)
	for _, line := range render.CounterLines(g.sess.Counts()) {
		rl.DrawText(line, 10, y, 20, rl.White)
		y += 25
	}
	rl.DrawText(fmt.Sprintf("Tick: %d  Match: %d", g.Tick(), g.sess.Match()+1), 10, y, 20, rl.White)
	y += 25
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]", g.stepsPerUpdate), 10, y, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED", 10, y+25, 20, rl.Yellow)
	}
}

func (g *Game) drawCentred(text string, size int32, c rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(g.screenWidth)/2-w/2, int32(g.screenHeight)/2-size/2, size, c)
}
