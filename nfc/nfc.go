package nfc

import (
	"errors"
	"io"
	"time"
)

var ErrNoCard = errors.New("no card detected")

// CardReader polls the field for a single card.
type CardReader interface {
	io.Closer
	// Poll returns the hex encoded UID of a card in the field. It gives up after timeout, and any error on the
	// way is reported as no card.
	Poll(timeout time.Duration) (string, bool)
}

// Config describes how the MFRC522 is wired up.
type Config struct {
	Bus      int
	Device   int
	SpeedHz  int
	ResetPin int
}

func DefaultConfig() Config {
	return Config{
		Bus:      0,
		Device:   0,
		SpeedHz:  1000000,
		ResetPin: 22,
	}
}
