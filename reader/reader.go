// Package reader is the control core of the card reader: a state machine rendered on an LED strip, a sensor
// polling for cards and a player for the confirmation sound, each running in its own goroutine.
package reader

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Devices are the collaborators of the reader.
type Devices struct {
	Card CardReader
	// CardErr is the error returned when the card reader was set up, if any.
	CardErr error
	Strip   Strip
	Audio   AudioEngine
	Storage Storage
	// Taps is optional.
	Taps TapRecorder
}

type Reader struct {
	reg     Register
	signals Signals

	presenter *Presenter
	sensor    *Sensor
	player    *Player
}

// New wires the units together. Storage is checked once here; without it, or without an audio engine, the player
// is never started. A card reader that failed to initialize puts the reader straight into Error.
func New(cfg Config, d Devices) *Reader {
	r := &Reader{}

	playback := d.Audio != nil && d.Storage != nil && d.Storage.Available()
	if !playback {
		log.Warnln("No storage available, confirmations will be silent")
	}

	r.presenter = NewPresenter(cfg, d.Strip, &r.reg, &r.signals, playback)
	if d.CardErr != nil || d.Card == nil {
		log.Errorf("Card reader failed to initialize: %v", d.CardErr)
		r.presenter.Fail(time.Now())
	} else {
		r.sensor = NewSensor(cfg, d.Card, &r.reg, &r.signals, d.Taps)
	}
	if playback {
		r.player = NewPlayer(cfg, d.Audio, &r.signals)
	}
	return r
}

func (r *Reader) State() State {
	return r.reg.Load()
}

// Run starts all units and blocks until the context is done and every unit has returned.
func (r *Reader) Run(ctx context.Context) {
	var wg sync.WaitGroup
	run := func(f func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(ctx)
		}()
	}

	run(r.presenter.Run)
	if r.sensor != nil {
		run(r.sensor.Run)
	}
	if r.player != nil {
		run(r.player.Run)
	}
	wg.Wait()
}
