// Package audio plays the CHIP-8 sound cue.
//
// The cue is a short square wave beep. The oto player streams it to the
// sound card, builds with the headless tag and the text beeper only report
// it through the logger.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

// Default beep parameters.
const (
	SampleRate    = 44100
	BeepFrequency = 440
	BeepDuration  = 100 * time.Millisecond

	amplitude  = 0.25
	sampleSize = 4 // float32 mono
)

// tone generates a mono float32 little endian square wave for a limited
// number of samples and silence afterwards. It is safe for concurrent use,
// the audio backend reads it from its own goroutine.
type tone struct {
	mu        sync.Mutex
	period    int // samples per wave period
	remaining int // samples left to play
	position  int // sample position inside of the period
}

func newTone(sampleRate, frequency int) *tone {
	return &tone{
		period: max(sampleRate/frequency, 2),
	}
}

// start plays the tone for the given number of samples, restarting a
// currently playing tone.
func (t *tone) start(samples int) {
	t.mu.Lock()
	t.remaining = samples
	t.position = 0
	t.mu.Unlock()
}

// Read fills p with whole samples. It never returns an error, silence is
// produced once the tone has finished.
func (t *tone) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(p) / sampleSize * sampleSize
	for i := 0; i < n; i += sampleSize {
		var sample float32
		if t.remaining > 0 {
			sample = amplitude
			if t.position >= t.period/2 {
				sample = -amplitude
			}
			t.position = (t.position + 1) % t.period
			t.remaining--
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
	}
	return n, nil
}

// samplesFor returns the number of samples of the given duration.
func samplesFor(sampleRate int, duration time.Duration) int {
	return int(int64(sampleRate) * int64(duration) / int64(time.Second))
}
