// Package audio synthesizes the pet's sound effects and 8-bit background
// music and plays them through the beep speaker.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/mochi/config"
)

// Effect names a one-shot sound.
type Effect string

const (
	EffectStart    Effect = "start"
	EffectEat      Effect = "eat"
	EffectKick     Effect = "kick"
	EffectGameOver Effect = "game_over"
)

// Manager mixes effects and the music loop onto the speaker.
type Manager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	music       *beep.Ctrl
	master      float64
	musicVolume float64
	initialized bool
}

// New opens the speaker. It fails when no audio device is available.
func New(cfg config.AudioConfig) (*Manager, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}

	m := &Manager{
		rate:        rate,
		mixer:       &beep.Mixer{},
		master:      cfg.MasterVolume,
		musicVolume: cfg.MusicVolume,
	}

	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true

	return m, nil
}

// Play starts a one-shot effect. Unknown effects are ignored.
func (m *Manager) Play(e Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	s := e.Streamer(m.rate)
	if s == nil {
		slog.Debug("unknown sound effect", "effect", string(e))
		return
	}

	speaker.Lock()
	m.mixer.Add(volume(s, m.master))
	speaker.Unlock()
}

// PlayMusic starts the background loop, or resumes it if it was stopped.
func (m *Manager) PlayMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if m.music != nil {
		m.music.Paused = false
		return
	}
	m.music = &beep.Ctrl{Streamer: volume(NewMusic(m.rate), m.master*m.musicVolume)}
	m.mixer.Add(m.music)
}

// StopMusic pauses the background loop.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.music == nil {
		return
	}
	speaker.Lock()
	m.music.Paused = true
	speaker.Unlock()
}

// Close silences everything and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	m.music = nil
	m.initialized = false
}

// Nop is a silent player for headless runs and machines without a sound card.
type Nop struct{}

func (Nop) Play(Effect) {}
func (Nop) PlayMusic()  {}
func (Nop) StopMusic()  {}
func (Nop) Close()      {}

// volume scales a stream by a linear gain.
// math.Log2(0) is -Inf, so zero gain is handled as silence.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
