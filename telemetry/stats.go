package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Pet state at window end
	Alive      bool    `csv:"alive"`
	Color      string  `csv:"color"`
	Fullness   float64 `csv:"fullness"`
	Happiness  float64 `csv:"happiness"`
	Scale      float64 `csv:"scale"`
	FoodCount  int     `csv:"food"`
	BallActive bool    `csv:"ball"`

	// Events during window
	Feeds        int `csv:"feeds"`
	Plays        int `csv:"plays"`
	Eats         int `csv:"eats"`
	Bounces      int `csv:"bounces"`
	Kicks        int `csv:"kicks"`
	BallsExpired int `csv:"balls_expired"`
	Prompts      int `csv:"prompts"`

	// Mood distribution over the window
	FullnessMean float64 `csv:"fullness_mean"`
	FullnessP10  float64 `csv:"fullness_p10"`
	FullnessP50  float64 `csv:"fullness_p50"`
	FullnessP90  float64 `csv:"fullness_p90"`

	HappinessMean float64 `csv:"happiness_mean"`
	HappinessP10  float64 `csv:"happiness_p10"`
	HappinessP50  float64 `csv:"happiness_p50"`
	HappinessP90  float64 `csv:"happiness_p90"`
}

// Quantile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = max(0, min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeMoodStats calculates mean and quantiles of mood samples.
func ComputeMoodStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Quantile(sorted, 0.10)
	p50 = Quantile(sorted, 0.50)
	p90 = Quantile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Bool("alive", s.Alive),
		slog.String("color", s.Color),
		slog.Float64("fullness", s.Fullness),
		slog.Float64("happiness", s.Happiness),
		slog.Float64("scale", s.Scale),
		slog.Int("food", s.FoodCount),
		slog.Bool("ball", s.BallActive),
		slog.Int("feeds", s.Feeds),
		slog.Int("plays", s.Plays),
		slog.Int("eats", s.Eats),
		slog.Int("bounces", s.Bounces),
		slog.Int("kicks", s.Kicks),
		slog.Int("balls_expired", s.BallsExpired),
		slog.Int("prompts", s.Prompts),
		slog.Float64("fullness_mean", s.FullnessMean),
		slog.Float64("fullness_p10", s.FullnessP10),
		slog.Float64("fullness_p90", s.FullnessP90),
		slog.Float64("happiness_mean", s.HappinessMean),
		slog.Float64("happiness_p10", s.HappinessP10),
		slog.Float64("happiness_p90", s.HappinessP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"alive", s.Alive,
		"color", s.Color,
		"fullness", s.Fullness,
		"happiness", s.Happiness,
		"scale", s.Scale,
		"feeds", s.Feeds,
		"plays", s.Plays,
		"eats", s.Eats,
		"bounces", s.Bounces,
		"kicks", s.Kicks,
		"fullness_mean", s.FullnessMean,
		"fullness_p10", s.FullnessP10,
		"fullness_p90", s.FullnessP90,
		"happiness_mean", s.HappinessMean,
		"happiness_p10", s.HappinessP10,
		"happiness_p90", s.HappinessP90,
	)
}
