package game

import (
	"image"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/audio"
	"github.com/pthm-cable/mochi/config"
	"github.com/pthm-cable/mochi/physics"
	"github.com/pthm-cable/mochi/telemetry"
)

type fakeAudio struct {
	played []audio.Effect
	music  int
	stops  int
}

func (a *fakeAudio) Play(e audio.Effect) { a.played = append(a.played, e) }
func (a *fakeAudio) PlayMusic()          { a.music++ }
func (a *fakeAudio) StopMusic()          { a.stops++ }

func (a *fakeAudio) count(e audio.Effect) int {
	n := 0
	for _, p := range a.played {
		if p == e {
			n++
		}
	}
	return n
}

type promptRecorder struct{ prompts []string }

func (r *promptRecorder) SendPrompt(p string) { r.prompts = append(r.prompts, p) }

type frameRecorder struct{ sizes []image.Rectangle }

func (r *frameRecorder) SendFrame(img image.Image) { r.sizes = append(r.sizes, img.Bounds()) }

func newTestGame(t *testing.T, opts Options) (*Game, *fakeAudio) {
	t.Helper()
	config.MustInit("")
	a := &fakeAudio{}
	opts.Headless = true
	opts.Audio = a
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g, a
}

func TestStart(t *testing.T) {
	g, a := newTestGame(t, Options{})

	if g.Phase() != PhaseStartMenu {
		t.Fatalf("phase = %v, want start_menu", g.Phase())
	}
	// Nothing moves on the start menu
	g.Update(1.0 / 60)
	if g.Tick() != 0 {
		t.Errorf("tick = %d before start, want 0", g.Tick())
	}

	if !g.Start() {
		t.Fatal("Start() = false, want true")
	}
	if g.Start() {
		t.Error("second Start() = true, want false")
	}
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want running", g.Phase())
	}
	if a.count(audio.EffectStart) != 1 || a.music != 1 {
		t.Errorf("start sfx = %d, music = %d, want 1 and 1", a.count(audio.EffectStart), a.music)
	}
}

func TestFeed(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	cfg := config.Cfg()

	if g.Feed() {
		t.Error("Feed() before start = true, want false")
	}
	g.Start()

	if !g.Feed() {
		t.Fatal("Feed() = false, want true")
	}
	if g.Feed() {
		t.Error("Feed() with food in play = true, want false")
	}
	if len(g.Foods()) != 1 {
		t.Fatalf("foods = %d, want 1", len(g.Foods()))
	}

	f := g.Foods()[0]
	pos := g.Space().Position(f.Handle)
	vel := g.Space().Velocity(f.Handle)
	left := pos.X == cfg.Food.Radius && vel.X == cfg.Food.SpawnSpeed
	right := pos.X == float64(cfg.Screen.Width)-cfg.Food.Radius && vel.X == -cfg.Food.SpawnSpeed
	if !left && !right {
		t.Errorf("food spawned at %v moving %v, want an edge moving inward", pos, vel)
	}
	if pos.Y != cfg.Food.SpawnY {
		t.Errorf("food y = %v, want %v", pos.Y, cfg.Food.SpawnY)
	}
}

func TestFoodBecomesEdible(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Start()
	g.Feed()
	f := g.Foods()[0]

	g.updateProps(1.5)
	if f.Edible {
		t.Fatal("food edible after 1.5s")
	}
	g.updateProps(0.5)
	if !f.Edible {
		t.Fatal("food not edible after 2s")
	}
	g.updateProps(30)
	if !f.Edible {
		t.Error("food stopped being edible")
	}
}

func TestPlayAndBallExpiry(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	cfg := config.Cfg()
	g.Start()

	if !g.Play() {
		t.Fatal("Play() = false, want true")
	}
	if g.Play() {
		t.Error("Play() with a ball in play = true, want false")
	}

	b := g.Ball()
	pos := g.Space().Position(b.Handle)
	if pos.X < cfg.Ball.SpawnMargin || pos.X > float64(cfg.Screen.Width)-cfg.Ball.SpawnMargin {
		t.Errorf("ball x = %v outside the spawn margin", pos.X)
	}

	g.updateProps(9.5)
	if g.Ball() == nil {
		t.Fatal("ball gone after 9.5s")
	}
	g.updateProps(0.5)
	if g.Ball() != nil {
		t.Fatal("ball still in play after 10s")
	}
	if g.Space().Exists(b.Handle) {
		t.Error("ball body still in the world")
	}
	if g.Pet().BallTarget() != nil {
		t.Error("pet still targets the expired ball")
	}

	g.updateProps(5)
	if n := g.collector.Count(telemetry.EventBallExpired); n != 1 {
		t.Errorf("ball expired %d times, want 1", n)
	}
	if !g.Play() {
		t.Error("Play() after expiry = false, want true")
	}
}

func TestClassifyContacts(t *testing.T) {
	config.MustInit("")
	space := physics.NewSpaceFromConfig(config.Cfg())
	add := func(x float64, l physics.Label) physics.Handle {
		return space.AddBody(physics.BodyDef{Position: r2.Vec{X: x, Y: 300}, Radius: 10, Density: 0.001, Label: l})
	}
	petA, petB := add(100, physics.LabelPet), add(200, physics.LabelPet)
	food, ball := add(300, physics.LabelFood), add(400, physics.LabelBall)

	contacts := []physics.Contact{
		{A: petA, B: food, LabelA: physics.LabelPet, LabelB: physics.LabelFood},
		{A: food, B: petB, LabelA: physics.LabelFood, LabelB: physics.LabelPet}, // same apple again
		{A: food, B: ball, LabelA: physics.LabelFood, LabelB: physics.LabelBall},
		{A: ball, B: petA, LabelA: physics.LabelBall, LabelB: physics.LabelPet},
		{A: petA, B: petB, LabelA: physics.LabelPet, LabelB: physics.LabelPet},
	}

	got := ClassifyContacts(contacts)
	want := []Effect{
		{Kind: EffectFoodContact, Prop: food},
		{Kind: EffectBallContact, Prop: ball},
	}
	if len(got) != len(want) {
		t.Fatalf("effects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("effect[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if len(ClassifyContacts(nil)) != 0 {
		t.Error("effects from no contacts")
	}
}

func TestEatEdibleFood(t *testing.T) {
	g, a := newTestGame(t, Options{})
	g.Start()
	g.Feed()
	f := g.Foods()[0]
	f.Edible = true

	g.Pet().Mood.Fullness = 50
	g.Pet().Mood.Happiness = 50
	g.applyEffects([]Effect{{Kind: EffectFoodContact, Prop: f.Handle}})

	if len(g.Foods()) != 0 {
		t.Fatal("food not removed after eating")
	}
	if g.Space().Exists(f.Handle) {
		t.Error("food body still in the world")
	}
	if m := g.Pet().Mood; m.Fullness != 65 || m.Happiness != 55 {
		t.Errorf("mood = %v/%v, want 65/55", m.Fullness, m.Happiness)
	}
	if a.count(audio.EffectEat) != 1 {
		t.Errorf("eat sfx = %d, want 1", a.count(audio.EffectEat))
	}
	if !g.Feed() {
		t.Error("Feed() after eating = false, want true")
	}
}

func TestUnripeFoodBounces(t *testing.T) {
	g, a := newTestGame(t, Options{})
	g.Start()
	g.Feed()
	f := g.Foods()[0]

	before := g.Space().Velocity(f.Handle)
	delta := r2.Sub(g.Space().Position(f.Handle), g.Pet().Body.CenterPosition())
	fullness := g.Pet().Mood.Fullness
	g.applyEffects([]Effect{{Kind: EffectFoodContact, Prop: f.Handle}})

	if len(g.Foods()) != 1 {
		t.Fatal("unripe food was eaten")
	}
	change := r2.Sub(g.Space().Velocity(f.Handle), before)
	if r2.Dot(change, delta) <= 0 {
		t.Errorf("velocity change %v does not point away from the pet (%v)", change, delta)
	}
	if g.Pet().Mood.Fullness != fullness {
		t.Error("bounce changed fullness")
	}
	if len(a.played) != 1 { // only the start sound
		t.Errorf("sounds = %v, want only start", a.played)
	}
}

func TestBallKick(t *testing.T) {
	g, a := newTestGame(t, Options{})
	g.Start()
	g.Play()
	b := g.Ball()

	g.Pet().Mood.Happiness = 50
	before := g.Space().Velocity(b.Handle)
	delta := r2.Sub(g.Space().Position(b.Handle), g.Pet().Body.CenterPosition())
	g.applyEffects([]Effect{{Kind: EffectBallContact, Prop: b.Handle}})

	if h := g.Pet().Mood.Happiness; h != 53 {
		t.Errorf("happiness = %v, want 53", h)
	}
	change := r2.Sub(g.Space().Velocity(b.Handle), before)
	if r2.Dot(change, delta) <= 0 {
		t.Errorf("kick %v does not point away from the pet (%v)", change, delta)
	}
	if a.count(audio.EffectKick) != 1 {
		t.Errorf("kick sfx = %d, want 1", a.count(audio.EffectKick))
	}

	// Effects on a removed prop are ignored
	g.removeBall()
	g.applyEffects([]Effect{{Kind: EffectBallContact, Prop: b.Handle}})
	if h := g.Pet().Mood.Happiness; h != 53 {
		t.Errorf("happiness = %v after a stale contact, want 53", h)
	}
}

func TestPromptSentOnlyOnChange(t *testing.T) {
	sink := &promptRecorder{}
	g, _ := newTestGame(t, Options{PromptSink: sink})
	g.Start()

	for i := 0; i < 3; i++ {
		g.refreshPrompt()
	}
	if len(sink.prompts) != 1 {
		t.Fatalf("prompts sent = %d, want 1", len(sink.prompts))
	}

	g.Feed()
	g.refreshPrompt()
	g.refreshPrompt()
	if len(sink.prompts) != 2 {
		t.Fatalf("prompts sent = %d, want 2", len(sink.prompts))
	}
	if !strings.Contains(sink.prompts[1], "red apple") {
		t.Errorf("prompt %q lacks the food clause", sink.prompts[1])
	}
	if g.Prompt() != sink.prompts[1] {
		t.Errorf("Prompt() = %q, want the last sent", g.Prompt())
	}
}

func TestGameOverPlaysOnce(t *testing.T) {
	var windows []telemetry.WindowStats
	g, a := newTestGame(t, Options{
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	g.Start()

	g.Pet().Mood.Dead = true
	g.Update(1.0 / 60)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game_over", g.Phase())
	}
	for i := 0; i < 5; i++ {
		g.Update(1.0 / 60)
		g.gameOver()
	}
	if n := a.count(audio.EffectGameOver); n != 1 {
		t.Errorf("game over sfx = %d, want 1", n)
	}
	if a.stops != 1 {
		t.Errorf("music stopped %d times, want 1", a.stops)
	}
	if g.Tick() != 1 {
		t.Errorf("tick = %d, want 1", g.Tick())
	}
	// Death closes the stats window early
	if len(windows) != 1 || windows[0].Alive {
		t.Errorf("windows = %+v, want one with alive=false", windows)
	}
}

func TestUpdateClampsFrameTime(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Start()

	g.Update(5)
	if got, want := g.SimTime(), config.Cfg().Physics.MaxFrameDT; got != want {
		t.Errorf("sim time = %v, want %v", got, want)
	}
	g.Update(-1)
	if g.Tick() != 1 {
		t.Errorf("tick = %d after a negative frame, want 1", g.Tick())
	}
}

func TestCaretaker(t *testing.T) {
	tests := []struct {
		name                string
		fullness, happiness float64
		dead                bool
		wantFood, wantBall  bool
	}{
		{"content", 80, 80, false, false, false},
		{"hungry", 30, 80, false, true, false},
		{"bored", 80, 30, false, false, true},
		{"both", 30, 30, false, true, true},
		{"dead", 30, 30, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, Options{Caretaker: true})
			g.Start()
			g.Pet().Mood.Fullness = tt.fullness
			g.Pet().Mood.Happiness = tt.happiness
			g.Pet().Mood.Dead = tt.dead

			g.runCaretaker()

			if got := len(g.Foods()) > 0; got != tt.wantFood {
				t.Errorf("food = %v, want %v", got, tt.wantFood)
			}
			if got := g.Ball() != nil; got != tt.wantBall {
				t.Errorf("ball = %v, want %v", got, tt.wantBall)
			}
		})
	}
}

func TestHeadlessRun(t *testing.T) {
	frames := &frameRecorder{}
	prompts := &promptRecorder{}
	var windows int
	g, _ := newTestGame(t, Options{
		StepsPerUpdate: 60,
		StatsWindowSec: 0.5,
		FrameSink:      frames,
		PromptSink:     prompts,
		StatsCallback:  func(telemetry.WindowStats) { windows++ },
	})

	g.UpdateHeadless()

	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, want running", g.Phase())
	}
	if g.Tick() != 60 {
		t.Errorf("tick = %d, want 60", g.Tick())
	}
	if len(prompts.prompts) == 0 {
		t.Error("no prompt sent")
	}
	if windows < 1 {
		t.Error("no stats window closed in one second")
	}
	cfg := config.Cfg()
	if len(frames.sizes) != 1 || frames.sizes[0] != image.Rect(0, 0, cfg.Screen.Width, cfg.Screen.Height) {
		t.Errorf("frames = %v, want one canvas-sized frame", frames.sizes)
	}

	// The pet stays inside the canvas
	c := g.Pet().Body.CenterPosition()
	if c.X < 0 || c.X > float64(cfg.Screen.Width) || c.Y < 0 || c.Y > float64(cfg.Screen.Height) {
		t.Errorf("pet center %v left the canvas", c)
	}
}

func TestSnapshot(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Start()
	g.Feed()
	g.Play()
	g.Update(1.0 / 60)

	s := g.createSnapshot(nil)
	if s.Phase != "running" || s.Tick != 1 {
		t.Errorf("phase/tick = %s/%d", s.Phase, s.Tick)
	}
	if len(s.Pet.Outline) != config.Cfg().Pet.Particles {
		t.Errorf("outline = %d points, want %d", len(s.Pet.Outline), config.Cfg().Pet.Particles)
	}
	if len(s.Foods) != 1 || s.Ball == nil {
		t.Errorf("foods = %d, ball = %v", len(s.Foods), s.Ball)
	}
	if s.RNGSeed != 7 {
		t.Errorf("seed = %d, want 7", s.RNGSeed)
	}
}

func TestSceneMatchesState(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Start()
	g.Feed()
	g.Foods()[0].Edible = true

	s := g.Scene()
	if s.Pet == nil || len(s.Pet.Outline) != config.Cfg().Pet.Particles {
		t.Fatal("scene pet missing its outline")
	}
	if len(s.Foods) != 1 || !s.Foods[0].Edible || !s.Foods[0].Stem {
		t.Errorf("scene foods = %+v", s.Foods)
	}
	if s.Ball != nil {
		t.Error("scene has a ball without one in play")
	}

	g.ToggleBorderBlur()
	if !g.BorderBlur() {
		t.Error("border blur not toggled")
	}
}
