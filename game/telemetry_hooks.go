package game

import (
	"log/slog"

	"github.com/pthm-cable/mochi/telemetry"
)

// logEvent records a game event in the window counters, the log and the
// events CSV.
func (g *Game) logEvent(typ telemetry.EventType, detail string) {
	ev := telemetry.NewEvent(typ, g.tick, g.simTime, g.pet.Mood.Fullness, g.pet.Mood.Happiness).WithDetail(detail)
	g.collector.Record(ev)
	ev.LogEvent()

	if g.outputManager != nil {
		if err := g.outputManager.WriteEvent(ev); err != nil {
			slog.Error("failed to write event", "error", err)
		}
	}
}

// flushTelemetry closes the stats window when it is due, or right away
// when force is set, and handles bookmarks.
func (g *Game) flushTelemetry(force bool) {
	if !force && !g.collector.ShouldFlush(g.simTime) {
		return
	}

	stats := g.collector.Flush(g.tick, g.simTime, g.telemetryState())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		// Save snapshot on bookmark
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

func (g *Game) telemetryState() telemetry.State {
	return telemetry.State{
		Alive:      !g.pet.Dead(),
		Color:      string(g.pet.Mood.Color),
		Fullness:   g.pet.Mood.Fullness,
		Happiness:  g.pet.Mood.Happiness,
		Scale:      g.pet.Body.Scale(),
		FoodCount:  len(g.foods),
		BallActive: g.ball != nil,
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	c := g.pet.Body.CenterPosition()
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  g.seed,
		Width:    float64(g.cfg.Screen.Width),
		Height:   float64(g.cfg.Screen.Height),
		Tick:     g.tick,
		SimTime:  g.simTime,
		Phase:    g.phase.String(),
		Prompt:   g.prompt,
		Bookmark: bookmark,
		Pet: telemetry.PetState{
			Fullness:  g.pet.Mood.Fullness,
			Happiness: g.pet.Mood.Happiness,
			Color:     string(g.pet.Mood.Color),
			Dead:      g.pet.Dead(),
			Scale:     g.pet.Body.Scale(),
			Center:    telemetry.Point{X: c.X, Y: c.Y},
		},
	}
	for _, p := range g.pet.Body.Outline() {
		snapshot.Pet.Outline = append(snapshot.Pet.Outline, telemetry.Point{X: p.X, Y: p.Y})
	}

	for _, f := range g.foods {
		if !g.space.Exists(f.Handle) {
			continue
		}
		pos, vel := g.space.Position(f.Handle), g.space.Velocity(f.Handle)
		snapshot.Foods = append(snapshot.Foods, telemetry.PropState{
			Position: telemetry.Point{X: pos.X, Y: pos.Y},
			Velocity: telemetry.Point{X: vel.X, Y: vel.Y},
			Age:      f.Age,
			Edible:   f.Edible,
		})
	}

	if g.ball != nil && g.space.Exists(g.ball.Handle) {
		pos, vel := g.space.Position(g.ball.Handle), g.space.Velocity(g.ball.Handle)
		snapshot.Ball = &telemetry.PropState{
			Position: telemetry.Point{X: pos.X, Y: pos.Y},
			Velocity: telemetry.Point{X: vel.X, Y: vel.Y},
			Remains:  g.ball.Remaining,
		}
	}

	return snapshot
}
