// Package game is the raylib window front-end. It owns no simulation
// state of its own: it drives a session and draws what the session reports.
package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rps/camera"
	"github.com/pthm-cable/rps/render"
	"github.com/pthm-cable/rps/session"
)

// Options configures a Game.
type Options struct {
	StepsPerUpdate int               // simulation ticks per Update call
	SpriteSize     float32           // on-screen entity diameter in pixels
	Countdown      *render.Countdown // nil = no countdown
}

// Game holds the window front-end state.
type Game struct {
	sess      *session.Session
	countdown *render.Countdown
	camera    *camera.Camera

	stepsPerUpdate int
	spriteSize     float32
	paused         bool

	screenWidth, screenHeight float32
}

// NewGame creates a game for an already opened raylib window.
func NewGame(sess *session.Session, opts Options) *Game {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	if opts.SpriteSize <= 0 {
		opts.SpriteSize = 2 * sess.Sim().Params().Radius
	}
	if opts.Countdown == nil {
		opts.Countdown = render.NewCountdown(0, "")
		opts.Countdown.Skip()
	} else {
		opts.Countdown.Start()
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	arena := sess.Sim().Params().Arena

	return &Game{
		sess:           sess,
		countdown:      opts.Countdown,
		camera:         camera.New(w, h, arena.Width, arena.Height),
		stepsPerUpdate: opts.StepsPerUpdate,
		spriteSize:     opts.SpriteSize,
		screenWidth:    w,
		screenHeight:   h,
	}
}

// Update handles input, then either advances the countdown or steps the simulation.
func (g *Game) Update() {
	g.handleInput()

	if g.countdown.Active() {
		g.countdown.Advance(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		return
	}
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		if g.sess.Step().Terminated {
			break
		}
	}
}

// replay starts the next match and restarts the countdown.
func (g *Game) replay() {
	if !g.sess.Over() {
		return
	}
	g.sess.Replay()
	g.countdown.Start()
}

// Tick returns the current match tick.
func (g *Game) Tick() int32 {
	return g.sess.Last().Tick
}
