package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a simulation tick.
type Phase int

// Phases in step order.
const (
	PhasePhysics Phase = iota
	PhaseContacts
	PhaseMood
	PhaseBehavior
	PhaseProps
	PhasePrompt
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{
	"physics", "contacts", "mood", "behavior", "props", "prompt", "telemetry",
}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

type tickSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector times ticks and their phases over a rolling window.
type PerfCollector struct {
	now     func() time.Time
	samples []tickSample
	next    int
	filled  int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector keeps the last window ticks, 60 if window < 1.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: time.Now, samples: make([]tickSample, window)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = phase, now, true
}

// EndTick closes the tick and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickStart)

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	p.filled = min(p.filled+1, len(p.samples))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < phaseCount {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTick        time.Duration
	TicksPerSecond float64
	PhasePct       [phaseCount]float64 // Share of the average tick
}

// Stats averages the ticks in the window.
func (p *PerfCollector) Stats() PerfStats {
	if p.filled == 0 {
		return PerfStats{}
	}

	var total time.Duration
	var phases [phaseCount]time.Duration
	for _, s := range p.samples[:p.filled] {
		total += s.total
		for i, d := range s.phases {
			phases[i] += d
		}
	}

	var st PerfStats
	st.AvgTick = total / time.Duration(p.filled)
	if total > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTick)
		for i, d := range phases {
			st.PhasePct[i] = float64(d) / float64(total) * 100
		}
	}
	return st
}

// LogStats logs the window, skipping phases under 0.1%.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	for i, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, Phase(i).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	PhysicsPct   float64 `csv:"physics_pct"`
	ContactsPct  float64 `csv:"contacts_pct"`
	MoodPct      float64 `csv:"mood_pct"`
	BehaviorPct  float64 `csv:"behavior_pct"`
	PropsPct     float64 `csv:"props_pct"`
	PromptPct    float64 `csv:"prompt_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		PhysicsPct:   s.PhasePct[PhasePhysics],
		ContactsPct:  s.PhasePct[PhaseContacts],
		MoodPct:      s.PhasePct[PhaseMood],
		BehaviorPct:  s.PhasePct[PhaseBehavior],
		PropsPct:     s.PhasePct[PhaseProps],
		PromptPct:    s.PhasePct[PhasePrompt],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
