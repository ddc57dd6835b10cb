// Package audio plays the synthesized sound effects and background music
// of the game through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/houseguard/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager manages all game audio. Until Initialize succeeds every
// method is a no-op, so the game runs unchanged on machines without a
// sound device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether a sound device is open.
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play starts a one-shot sound effect.
func (sm *SoundManager) Play(snd sim.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if s := SoundFor(snd, sampleRate); s != nil {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
}

// SetMusic starts or pauses the background loop.
func (sm *SoundManager) SetMusic(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if sm.music == nil {
		if !on {
			return
		}
		sm.music = &beep.Ctrl{Streamer: newVolume(NewMusicGenerator(sampleRate), 0.8)}
		sm.mixer.Add(sm.music)
	}
	sm.music.Paused = !on
}

// Cleanup stops all sounds. beep cannot close the speaker, so the mixer is
// cleared instead.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.music = nil
	sm.initialized = false
}

var _ sim.AudioSink = (*SoundManager)(nil)
