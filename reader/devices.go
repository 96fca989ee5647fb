package reader

import (
	"time"

	"github.com/callebjorkell/nfc-chime/led"
)

// CardReader polls for a proximity card. Poll must return within timeout, and reports ok only when a card was
// read. Errors on the bus are not distinguished from an empty field.
type CardReader interface {
	Poll(timeout time.Duration) (id string, ok bool)
}

// Strip is a buffered LED strip. Only Commit touches the hardware.
type Strip interface {
	Len() int
	SetPixels(pixels []led.Color)
	SetBrightness(b uint8)
	Commit() error
}

// AudioEngine streams named assets from storage.
type AudioEngine interface {
	StartAsset(name string) bool
	IsActive() bool
	Advance()
	SetGain(level int)
}

type Storage interface {
	Available() bool
}

// TapRecorder is told about every card the Sensor detects.
type TapRecorder interface {
	Record(id string, at time.Time) error
}
