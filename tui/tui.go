// Package tui is a terminal front-end that draws the arena with tcell.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/rps/components"
	"github.com/pthm-cable/rps/render"
	"github.com/pthm-cable/rps/session"
	"github.com/pthm-cable/rps/sim"
	"github.com/pthm-cable/rps/systems"
)

// hudRows is the number of terminal rows reserved above the arena.
const hudRows = 1

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func kindStyle(k components.Kind) tcell.Style {
	c := render.KindColor(k)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Bold(true)
}

// Renderer maps arena coordinates onto terminal cells.
type Renderer struct {
	screen tcell.Screen
	arena  systems.Bounds
}

// NewRenderer creates a renderer drawing onto screen.
func NewRenderer(screen tcell.Screen, arena systems.Bounds) *Renderer {
	return &Renderer{screen: screen, arena: arena}
}

// Cell returns the terminal cell for an arena position.
func (r *Renderer) Cell(pos components.Position) (col, row int) {
	w, h := r.screen.Size()
	innerW, innerH := w-2, h-hudRows-2
	if innerW < 1 || innerH < 1 {
		return 0, hudRows
	}

	col = int(pos.X / r.arena.Width * float32(innerW))
	row = int(pos.Y / r.arena.Height * float32(innerH))
	col = min(max(col, 0), innerW-1)
	row = min(max(row, 0), innerH-1)
	return col + 1, row + hudRows + 1
}

// Draw renders one frame. overlay, when not empty, is centred on the arena.
func (r *Renderer) Draw(res sim.StepResult, counts sim.Counts, overlay string) {
	r.screen.Clear()
	w, h := r.screen.Size()

	x := 0
	for i, line := range render.CounterLines(counts) {
		if i > 0 {
			x = r.text(x, 0, "  ", hudStyle)
		}
		x = r.text(x, 0, line, kindStyle(components.Kinds[i]))
	}

	r.border(0, hudRows, w-1, h-1)

	for _, e := range res.Entities {
		col, row := r.Cell(e.Position)
		r.screen.SetContent(col, row, render.Glyph(e.Kind), nil, kindStyle(e.Kind))
	}

	if overlay != "" {
		r.text((w-len(overlay))/2, hudRows+(h-hudRows)/2, overlay, bannerStyle)
	}

	r.screen.Show()
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func (r *Renderer) border(x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		r.screen.SetContent(x, y0, tcell.RuneHLine, nil, borderStyle)
		r.screen.SetContent(x, y1, tcell.RuneHLine, nil, borderStyle)
	}
	for y := y0; y <= y1; y++ {
		r.screen.SetContent(x0, y, tcell.RuneVLine, nil, borderStyle)
		r.screen.SetContent(x1, y, tcell.RuneVLine, nil, borderStyle)
	}
	r.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, borderStyle)
	r.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, borderStyle)
	r.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, borderStyle)
	r.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, borderStyle)
}

// Options configures the terminal loop.
type Options struct {
	FPS       int
	Countdown *render.Countdown
	MaxTicks  int // 0 = unlimited
}

// App runs a session in the terminal.
type App struct {
	screen    tcell.Screen
	renderer  *Renderer
	sess      *session.Session
	countdown *render.Countdown
	opts      Options
	paused    bool
}

// NewApp creates a terminal app. The screen must already be initialized.
func NewApp(screen tcell.Screen, sess *session.Session, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Countdown == nil {
		opts.Countdown = render.NewCountdown(0, "")
	}
	opts.Countdown.Start()
	return &App{
		screen:    screen,
		renderer:  NewRenderer(screen, sess.Sim().Params().Arena),
		sess:      sess,
		countdown: opts.Countdown,
		opts:      opts,
	}
}

// HandleEvent processes one terminal event. Returns false when the app should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			a.paused = !a.paused
		case 'r':
			if a.sess.Over() {
				a.sess.Replay()
				a.countdown.Start()
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Frame advances one frame: countdown or one simulation step, then draw.
func (a *App) Frame(dt time.Duration) {
	switch {
	case a.countdown.Active():
		a.countdown.Advance(dt)
	case !a.paused:
		a.sess.Step()
	}
	a.draw()
}

func (a *App) draw() {
	res := a.sess.Last()
	overlay := a.countdown.Label()
	switch {
	case overlay != "":
	case res.Terminated:
		overlay = render.WinnerBanner(res.Winner) + "  [r] replay  [q] quit"
	case a.paused:
		overlay = "PAUSED"
	}
	a.renderer.Draw(res, a.sess.Counts(), overlay)
}

// Run drives the app until the user quits, ctx is cancelled or MaxTicks is reached.
func (a *App) Run(ctx context.Context) {
	frame := time.Second / time.Duration(a.opts.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)
	go a.pollEvents(events, stop)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if ev == nil || !a.HandleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.Frame(now.Sub(last))
			last = now
			if a.opts.MaxTicks > 0 && int(a.sess.Last().Tick) >= a.opts.MaxTicks {
				return
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or stop closes.
func (a *App) pollEvents(events chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}
