// Package game runs the pet simulation: the frame loop, the food and ball
// props, collision effects, the caretaker and the window glue.
package game

import (
	"image"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/audio"
	"github.com/pthm-cable/mochi/camera"
	"github.com/pthm-cable/mochi/config"
	"github.com/pthm-cable/mochi/pet"
	"github.com/pthm-cable/mochi/physics"
	"github.com/pthm-cable/mochi/renderer"
	"github.com/pthm-cable/mochi/systems"
	"github.com/pthm-cable/mochi/telemetry"
	"github.com/pthm-cable/mochi/ui"
)

// Phase is where the game is in its life.
type Phase int

const (
	PhaseStartMenu Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStartMenu:
		return "start_menu"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// PromptSink receives the pet's prompt whenever it changes.
type PromptSink interface {
	SendPrompt(prompt string)
}

// FrameSink receives rendered frames. It must not keep img after returning.
type FrameSink interface {
	SendFrame(img image.Image)
}

// Audio plays sound effects and the music loop.
type Audio interface {
	Play(e audio.Effect)
	PlayMusic()
	StopMusic()
}

// Options configures a game instance.
type Options struct {
	Seed           int64   // RNG seed (0 = use default 42)
	LogStats       bool    // Output telemetry via slog
	StatsWindowSec float64 // Stats window size in seconds (0 = use config)
	SnapshotDir    string  // Directory for snapshots (empty = disabled)
	OutputDir      string  // Directory for CSV output (empty = disabled)
	Headless       bool    // Never touch the window or GPU
	StepsPerUpdate int     // Frames per UpdateHeadless call
	Caretaker      bool    // Feed and play automatically

	PromptSink    PromptSink
	FrameSink     FrameSink
	Audio         Audio
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	rng   *rand.Rand
	seed  int64
	space *physics.Space

	pet   *pet.Pet
	foods []*Food
	ball  *Ball

	phase        Phase
	tick         int32
	simTime      float64
	prompt       string
	musicStopped bool

	// Collaborators
	promptSink PromptSink
	frameSink  FrameSink
	audio      Audio

	// Run control
	headless       bool
	stepsPerUpdate int
	caretaker      bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string

	// Rendering
	canvas     *renderer.Canvas
	renderOpts renderer.Options
	frameTimer float64

	// Window state, set up lazily on the first Draw
	camera    *camera.Camera
	hud       *ui.HUD
	controls  *ui.Controls
	frameTex  rl.Texture2D
	texPixels []rl.Color
	gpuReady  bool
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a game with the pet in the middle of the
// canvas, waiting on the start menu.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}
	rng := rand.New(rand.NewSource(seed))

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:              cfg,
		rng:              rng,
		seed:             seed,
		space:            physics.NewSpaceFromConfig(cfg),
		phase:            PhaseStartMenu,
		promptSink:       opts.PromptSink,
		frameSink:        opts.FrameSink,
		audio:            opts.Audio,
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		caretaker:        opts.Caretaker || cfg.Caretaker.Enabled,
		collector:        telemetry.NewCollector(statsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		canvas:           renderer.NewCanvas(cfg.Screen.Width, cfg.Screen.Height),
		renderOpts:       renderer.Options{BorderBlur: cfg.Render.BorderBlur},
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}

	g.pet = pet.New(g.space, float64(cfg.Screen.Width)/2, float64(cfg.Screen.Height)/2, cfg, rng)

	if !g.headless {
		// HUD textures are fixed for the whole game
		g.hud = ui.NewHUD(ui.HUDSeeds{
			Perm:      systems.BuildPermutationTable(rng),
			Fullness:  rng.Float64() * 1000,
			Happiness: rng.Float64() * 1000,
		}, cfg.Render.UINoiseScale, cfg.Render.BannerScale)
		g.controls = ui.NewControls()
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	return g
}

// Start leaves the start menu. It reports whether the game started.
func (g *Game) Start() bool {
	if g.phase != PhaseStartMenu {
		return false
	}
	g.phase = PhaseRunning
	g.audio.Play(audio.EffectStart)
	g.audio.PlayMusic()
	g.logEvent(telemetry.EventStart, "")
	return true
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Tick returns the number of frames simulated.
func (g *Game) Tick() int32 { return g.tick }

// SimTime returns the simulated seconds.
func (g *Game) SimTime() float64 { return g.simTime }

// Pet returns the pet.
func (g *Game) Pet() *pet.Pet { return g.pet }

// Foods returns the apples in play.
func (g *Game) Foods() []*Food { return g.foods }

// Ball returns the ball in play, or nil.
func (g *Game) Ball() *Ball { return g.ball }

// Prompt returns the last prompt sent.
func (g *Game) Prompt() string { return g.prompt }

// Space returns the physics world.
func (g *Game) Space() *physics.Space { return g.space }

// FoodPositions returns where each apple is.
func (g *Game) FoodPositions() []r2.Vec {
	pts := make([]r2.Vec, 0, len(g.foods))
	for _, f := range g.foods {
		pts = append(pts, g.space.Position(f.Handle))
	}
	return pts
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	g.unloadGPU()
}
