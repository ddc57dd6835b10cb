package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/houseguard/internal/sim"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

const (
	crashDuration = 450 * time.Millisecond
	chimeNote     = 180 * time.Millisecond
	chimeLast     = 420 * time.Millisecond
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator of the given shape.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1.0
			if o.phase < 0.5 {
				val = 1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay applies a short linear attack followed by exponential decay.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	attack   int
	speed    float64
	position int
}

// NewDecay shapes s with an attack ramp and an exponential tail.
func NewDecay(s beep.Streamer, attack time.Duration, speed float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, rate: rate, attack: rate.N(attack), speed: speed}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := range n {
		vol := math.Exp(-float64(d.position) / float64(d.rate) * d.speed)
		if d.position < d.attack {
			vol *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateCrashSound generates the noise burst played when a house falls.
func CreateCrashSound(rate beep.SampleRate) beep.Streamer {
	noise := NewDecay(NewOscillator(0, crashDuration, WaveNoise, rate), 5*time.Millisecond, 9, rate)
	rumble := NewDecay(NewOscillator(70, crashDuration, WaveSine, rate), 5*time.Millisecond, 5, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.6)), 0.6)
}

// CreateChimeSound generates the rising three-note chime of a finished session.
func CreateChimeSound(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64, d time.Duration) beep.Streamer {
		return NewDecay(NewOscillator(freq, d, WaveSine, rate), 10*time.Millisecond, 6, rate)
	}
	return newVolume(beep.Seq(note(523.25, chimeNote), note(659.25, chimeNote), note(783.99, chimeLast)), 0.5)
}

// SoundFor returns the effect streamer for snd, or nil if it has none.
func SoundFor(snd sim.Sound, rate beep.SampleRate) beep.Streamer {
	switch snd {
	case sim.SoundCrash:
		return CreateCrashSound(rate)
	case sim.SoundSessionEnd:
		return CreateChimeSound(rate)
	default:
		return nil
	}
}

// MusicGenerator generates an endless, quiet bass-and-pluck loop.
type MusicGenerator struct {
	sr    beep.SampleRate
	pos   int
	beat  int
	notes []float64
}

// NewMusicGenerator creates the background music generator.
func NewMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	return &MusicGenerator{
		sr:    sr,
		beat:  sr.N(400 * time.Millisecond),
		notes: []float64{220, 261.63, 329.63, 261.63, 196, 246.94, 293.66, 246.94},
	}
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		step := (g.pos / g.beat) % len(g.notes)
		inBeat := float64(g.pos%g.beat) / float64(g.sr)
		t := float64(g.pos) / float64(g.sr)

		freq := g.notes[step]
		pluck := 0.12 * math.Exp(-inBeat*7) * math.Sin(2*math.Pi*freq*t)
		bass := 0.06 * math.Sin(2*math.Pi*freq/2*t)

		sample := pluck + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}
