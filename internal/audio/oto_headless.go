//go:build headless

package audio

import "errors"

// ErrUnavailable is returned when the binary was built without audio support.
var ErrUnavailable = errors.New("audio output not available in headless build")

// Oto is not available in headless builds.
type Oto struct{}

// NewOto always fails in headless builds.
func NewOto() (*Oto, error) {
	return nil, ErrUnavailable
}

// Beep is a no-op.
func (o *Oto) Beep() {}

// Close is a no-op.
func (o *Oto) Close() error {
	return nil
}
