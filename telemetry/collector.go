package telemetry

// State is the pet state sampled when a window closes.
type State struct {
	Alive      bool
	Color      string
	Fullness   float64
	Happiness  float64
	Scale      float64
	FoodCount  int
	BallActive bool
}

// Collector accumulates mood samples and events within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartTime float64

	fullness  []float64
	happiness []float64

	// Event counters for current window
	counts map[EventType]int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		counts:            make(map[EventType]int),
	}
}

// Sample records the mood for one tick.
func (c *Collector) Sample(fullness, happiness float64) {
	c.fullness = append(c.fullness, fullness)
	c.happiness = append(c.happiness, happiness)
}

// Record counts an event.
func (c *Collector) Record(ev Event) {
	c.counts[ev.Type]++
}

// Count returns how many events of a type the current window has seen.
func (c *Collector) Count(typ EventType) int {
	return c.counts[typ]
}

// ShouldFlush returns true if the window has covered its duration.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets the collector for the next window.
func (c *Collector) Flush(currentTick int32, simTime float64, st State) WindowStats {
	fMean, fP10, fP50, fP90 := ComputeMoodStats(c.fullness)
	hMean, hP10, hP50, hP90 := ComputeMoodStats(c.happiness)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		Alive:      st.Alive,
		Color:      st.Color,
		Fullness:   st.Fullness,
		Happiness:  st.Happiness,
		Scale:      st.Scale,
		FoodCount:  st.FoodCount,
		BallActive: st.BallActive,

		Feeds:        c.counts[EventFeed],
		Plays:        c.counts[EventPlay],
		Eats:         c.counts[EventEat],
		Bounces:      c.counts[EventBounce],
		Kicks:        c.counts[EventKick],
		BallsExpired: c.counts[EventBallExpired],
		Prompts:      c.counts[EventPrompt],

		FullnessMean: fMean,
		FullnessP10:  fP10,
		FullnessP50:  fP50,
		FullnessP90:  fP90,

		HappinessMean: hMean,
		HappinessP10:  hP10,
		HappinessP50:  hP50,
		HappinessP90:  hP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartTime = simTime
	c.fullness = c.fullness[:0]
	c.happiness = c.happiness[:0]
	clear(c.counts)

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
