package audio

import (
	"github.com/retroenv/retrogolib/log"
)

// Text reports the sound cue through the logger instead of playing it.
type Text struct {
	logger *log.Logger
	beeps  int
}

// NewText returns a beeper that logs every sound cue.
func NewText(logger *log.Logger) *Text {
	return &Text{logger: logger}
}

// Beep logs the sound cue.
func (t *Text) Beep() {
	t.beeps++
	t.logger.Info("BEEP!", log.Int("count", t.beeps))
}

// Beeps returns the number of reported sound cues.
func (t *Text) Beeps() int {
	return t.beeps
}

// Close is a no-op.
func (t *Text) Close() error {
	return nil
}
