//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Oto plays the sound cue through the sound card.
type Oto struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *tone
	beep   int // beep length in samples

	mutex sync.Mutex
}

// NewOto opens the audio device and starts streaming silence to it.
func NewOto() (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	o := &Oto{
		ctx:  ctx,
		tone: newTone(SampleRate, BeepFrequency),
		beep: samplesFor(SampleRate, BeepDuration),
	}
	o.player = ctx.NewPlayer(o.tone)
	o.player.Play()
	return o, nil
}

// Beep plays the sound cue.
func (o *Oto) Beep() {
	o.tone.start(o.beep)
}

// Close stops the audio stream.
func (o *Oto) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
