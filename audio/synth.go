package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSquare Wave = iota
	WaveTriangle
	WaveNoise
)

// tone is a single oscillator that slides linearly from one frequency to
// another over its duration and fades out with an exponential decay.
type tone struct {
	rate     beep.SampleRate
	wave     Wave
	from, to float64
	decay    float64 // 1/s
	gain     float64

	phase    float64
	position int
	total    int
	noise    uint32
}

// Tone builds a finite oscillator stream.
func Tone(rate beep.SampleRate, wave Wave, from, to float64, d time.Duration, decay, gain float64) beep.Streamer {
	return &tone{
		rate:  rate,
		wave:  wave,
		from:  from,
		to:    to,
		decay: decay,
		gain:  gain,
		total: rate.N(d),
		noise: 0x9e3779b9,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		progress := float64(t.position) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		var val float64
		switch t.wave {
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		case WaveNoise:
			// xorshift32
			t.noise ^= t.noise << 13
			t.noise ^= t.noise >> 17
			t.noise ^= t.noise << 5
			val = float64(t.noise)/float64(math.MaxUint32)*2 - 1
		}

		secs := float64(t.position) / float64(t.rate)
		val *= t.gain * math.Exp(-t.decay*secs)

		samples[i][0] = val
		samples[i][1] = val

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// midiFreq converts a MIDI note number to Hz.
func midiFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// Streamer builds the sound for an effect, or nil for an unknown effect.
func (e Effect) Streamer(rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch e {
	case EffectStart:
		// Rising C major arpeggio
		notes := []int{72, 76, 79, 84}
		parts := make([]beep.Streamer, len(notes))
		for i, n := range notes {
			f := midiFreq(n)
			parts[i] = Tone(rate, WaveSquare, f, f, ms(90), 6, 0.3)
		}
		return beep.Seq(parts...)

	case EffectEat:
		return beep.Seq(
			Tone(rate, WaveSquare, 660, 990, ms(60), 10, 0.3),
			Tone(rate, WaveSquare, 880, 1320, ms(70), 12, 0.3),
		)

	case EffectKick:
		return beep.Mix(
			Tone(rate, WaveNoise, 0, 0, ms(40), 40, 0.25),
			Tone(rate, WaveTriangle, 220, 90, ms(120), 18, 0.6),
		)

	case EffectGameOver:
		notes := []int{67, 64, 60}
		parts := make([]beep.Streamer, 0, len(notes)+1)
		for _, n := range notes {
			f := midiFreq(n)
			parts = append(parts, Tone(rate, WaveTriangle, f, f, ms(220), 3, 0.5))
		}
		low := midiFreq(48)
		parts = append(parts, Tone(rate, WaveSquare, low, low*0.8, ms(500), 3, 0.3))
		return beep.Seq(parts...)
	}
	return nil
}
