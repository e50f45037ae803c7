package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// A rest in a pattern.
const rest = -1

// Two bars of melody over a walking bass, in MIDI notes, one per eighth.
var (
	melody = []int{
		72, 76, 79, 76, 77, 81, 79, rest,
		76, 79, 84, 79, 77, 74, 72, rest,
	}
	bass = []int{
		48, 48, 55, 55, 53, 53, 55, 55,
		52, 52, 55, 55, 53, 53, 48, 48,
	}
)

// music is an endless chiptune loop. It never drains.
type music struct {
	rate        beep.SampleRate
	stepSamples int
	position    int

	leadPhase float64
	bassPhase float64
}

// NewMusic returns the background loop at 150 BPM.
func NewMusic(rate beep.SampleRate) beep.Streamer {
	beat := time.Minute / 150
	return &music{
		rate:        rate,
		stepSamples: rate.N(beat / 2),
	}
}

func (m *music) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		step := (m.position / m.stepSamples) % len(melody)
		inStep := float64(m.position%m.stepSamples) / float64(m.stepSamples)

		// Short gap at the end of every note
		env := 1.0
		if inStep > 0.85 {
			env = 0
		}

		var val float64
		if note := melody[step]; note != rest {
			m.leadPhase += midiFreq(note) / float64(m.rate)
			m.leadPhase -= math.Floor(m.leadPhase)
			sq := 1.0
			if m.leadPhase >= 0.25 { // 25% duty
				sq = -1.0
			}
			val += 0.18 * sq * env
		}
		if note := bass[step]; note != rest {
			m.bassPhase += midiFreq(note) / float64(m.rate)
			m.bassPhase -= math.Floor(m.bassPhase)
			val += 0.25 * (4*math.Abs(m.bassPhase-0.5) - 1)
		}

		samples[i][0] = val
		samples[i][1] = val
		m.position++
	}
	return len(samples), true
}

func (m *music) Err() error { return nil }
