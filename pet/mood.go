// Package pet implements the soft-body pet: its body, its mood and the way
// it chases food and balls.
package pet

import (
	"image/color"
	"math"

	"github.com/pthm-cable/mochi/config"
)

// ColorCategory is the mood-derived body color.
type ColorCategory string

const (
	ColorPink   ColorCategory = "pink"
	ColorPurple ColorCategory = "purple"
	ColorYellow ColorCategory = "yellow"
	ColorBlue   ColorCategory = "blue"
	ColorGray   ColorCategory = "gray"
	ColorGreen  ColorCategory = "green"
)

var categoryRGB = map[ColorCategory]color.RGBA{
	ColorPink:   {R: 255, G: 182, B: 193, A: 255},
	ColorPurple: {R: 216, G: 191, B: 216, A: 255},
	ColorYellow: {R: 255, G: 255, B: 102, A: 255},
	ColorBlue:   {R: 173, G: 216, B: 230, A: 255},
	ColorGray:   {R: 169, G: 169, B: 169, A: 255},
	ColorGreen:  {R: 144, G: 238, B: 144, A: 255},
}

// RGB returns the base body color for the category.
func (c ColorCategory) RGB() color.RGBA {
	if rgb, ok := categoryRGB[c]; ok {
		return rgb
	}
	return categoryRGB[ColorGreen]
}

// Classify maps fullness and happiness to a color. First match wins.
func Classify(fullness, happiness float64) ColorCategory {
	switch {
	case fullness >= 75 && happiness >= 75:
		return ColorPink
	case fullness >= 50 && happiness >= 50:
		return ColorPurple
	case fullness < 50 && happiness >= 50:
		return ColorYellow
	case fullness >= 50 && happiness < 50:
		return ColorBlue
	case fullness < 30 && happiness < 30:
		return ColorGray
	default:
		return ColorGreen
	}
}

// Mood tracks hunger and happiness. Once Dead is set nothing changes.
type Mood struct {
	Fullness  float64
	Happiness float64
	Color     ColorCategory
	Dead      bool

	cfg config.MoodConfig
}

// NewMood creates a mood at the configured starting level.
func NewMood(cfg config.MoodConfig) Mood {
	m := Mood{
		Fullness:  cfg.Initial,
		Happiness: cfg.Initial,
		cfg:       cfg,
	}
	m.Color = Classify(m.Fullness, m.Happiness)
	return m
}

// Update decays fullness and happiness over dt seconds. Starvation speeds
// up the happiness decay, up to double at zero fullness.
func (m *Mood) Update(dt float64) {
	if m.Dead {
		return
	}

	m.Fullness = math.Max(0, m.Fullness-m.cfg.FullnessDecay*dt)

	rate := m.cfg.HappinessDecay
	if m.Fullness < m.cfg.HungryBelow {
		hunger := (m.cfg.HungryBelow - m.Fullness) / m.cfg.HungryBelow
		rate += m.cfg.HappinessDecay * hunger
	}
	m.Happiness = math.Max(0, m.Happiness-rate*dt)

	m.Color = Classify(m.Fullness, m.Happiness)
	m.checkTerminal()
}

// EatFood feeds the pet. Eating up to 100 fullness is fatal.
func (m *Mood) EatFood() {
	if m.Dead {
		return
	}
	m.Fullness = math.Min(100, m.Fullness+m.cfg.EatFullness)
	m.Happiness = math.Min(100, m.Happiness+m.cfg.EatHappiness)
	m.Color = Classify(m.Fullness, m.Happiness)
	m.checkTerminal()
}

// Cheer raises happiness, capped at 100.
func (m *Mood) Cheer(amount float64) {
	if m.Dead {
		return
	}
	m.Happiness = math.Min(100, m.Happiness+amount)
	m.Color = Classify(m.Fullness, m.Happiness)
}

func (m *Mood) checkTerminal() {
	if m.Fullness <= 0 || m.Happiness <= 0 || m.Fullness >= 100 {
		m.Dead = true
	}
}

// Hungry reports whether the pet counts as hungry for prompts.
func (m *Mood) Hungry() bool { return m.Fullness < 50 }

// Sad reports whether the pet counts as sad for prompts.
func (m *Mood) Sad() bool { return m.Happiness < 50 }
