package reader

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Sensor polls the card reader while the reader is idle.
type Sensor struct {
	cfg     Config
	card    CardReader
	reg     *Register
	signals *Signals
	taps    TapRecorder
}

// NewSensor creates a sensor. taps may be nil.
func NewSensor(cfg Config, card CardReader, reg *Register, signals *Signals, taps TapRecorder) *Sensor {
	return &Sensor{
		cfg:     cfg,
		card:    card,
		reg:     reg,
		signals: signals,
		taps:    taps,
	}
}

// step polls once if idle and returns how long to pause before the next step.
func (s *Sensor) step(now time.Time) time.Duration {
	if s.reg.Load() != Idle {
		return s.cfg.BusyPause
	}

	id, ok := s.card.Poll(s.cfg.PollTimeout)
	if !ok {
		return s.cfg.MissPause
	}

	log.Infof("Card %v detected", id)
	s.signals.CardDetected.Raise()
	if s.taps != nil {
		if err := s.taps.Record(id, now); err != nil {
			log.Warnf("Could not record tap for card %v: %v", id, err)
		}
	}
	// the same physical tap is still in the field for a while, so back off before reading again
	return s.cfg.Cooldown
}

func (s *Sensor) Run(ctx context.Context) {
	for {
		pause := s.step(time.Now())
		select {
		case <-ctx.Done():
			log.Debugln("Sensor stopped. Returning.")
			return
		case <-time.After(pause):
		}
	}
}
