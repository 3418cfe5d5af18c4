package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/rps/sim"
)

// Frame is everything needed to draw one tick.
type Frame struct {
	Width, Height int
	SpriteSize    float64
	Result        sim.StepResult
	Counts        sim.Counts
}

// Draw renders f into a new image.
func Draw(f Frame) image.Image {
	return draw(f).Image()
}

func draw(f Frame) *gg.Context {
	dc := gg.NewContext(f.Width, f.Height)
	dc.SetColor(Background)
	dc.Clear()

	r := f.SpriteSize / 2
	for _, e := range f.Result.Entities {
		x, y := float64(int(e.Position.X)), float64(int(e.Position.Y))
		dc.SetColor(KindColor(e.Kind))
		dc.DrawCircle(x, y, r)
		dc.Fill()

		dc.SetColor(Background)
		dc.DrawStringAnchored(string(Glyph(e.Kind)), x, y, 0.5, 0.5)
	}

	dc.SetColor(Foreground)
	for i, line := range CounterLines(f.Counts) {
		dc.DrawString(line, 20, float64(30+i*30))
	}

	if f.Result.Terminated {
		dc.DrawStringAnchored(WinnerBanner(f.Result.Winner), float64(f.Width)/2, float64(f.Height)/2, 0.5, 0.5)
	}

	return dc
}

// SavePNG renders f and writes it to path.
func SavePNG(path string, f Frame) error {
	if err := draw(f).SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}
