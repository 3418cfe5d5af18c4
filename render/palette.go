// Package render holds presentation helpers shared by the front-ends:
// kind colours, HUD text and an offscreen PNG frame renderer.
package render

import (
	"fmt"
	"image/color"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/sim"
)

// Background is the arena fill colour.
var Background = color.RGBA{R: 30, G: 30, B: 30, A: 255}

// Foreground is used for HUD text.
var Foreground = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var kindColors = [components.NumKinds]color.RGBA{
	components.Rock:     {R: 150, G: 150, B: 160, A: 255},
	components.Paper:    {R: 235, G: 230, B: 200, A: 255},
	components.Scissors: {R: 220, G: 70, B: 70, A: 255},
}

var kindGlyphs = [components.NumKinds]rune{
	components.Rock:     'R',
	components.Paper:    'P',
	components.Scissors: 'S',
}

// KindColor returns the fill colour for k.
func KindColor(k components.Kind) color.RGBA {
	if !k.Valid() {
		return Foreground
	}
	return kindColors[k]
}

// Glyph returns the single-letter marker for k.
func Glyph(k components.Kind) rune {
	if !k.Valid() {
		return '?'
	}
	return kindGlyphs[k]
}

// CounterLines returns one "Kind: n" line per kind in declaration order.
func CounterLines(c sim.Counts) []string {
	return []string{
		fmt.Sprintf("%s: %d", components.Rock.Title(), c.Rock),
		fmt.Sprintf("%s: %d", components.Paper.Title(), c.Paper),
		fmt.Sprintf("%s: %d", components.Scissors.Title(), c.Scissors),
	}
}

// WinnerBanner returns the end-of-match message.
func WinnerBanner(k components.Kind) string {
	return k.Title() + " Wins!"
}
