// Package preview renders the LED effects of a full tap cycle without any hardware, one row per sample of the
// strip.
package preview

import (
	"errors"
	"image"
	"time"

	"github.com/callebjorkell/nfc-chime/led"
	"github.com/callebjorkell/nfc-chime/reader"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
)

const (
	// time spent idle before the card is presented, and after the cycle is over
	idleLead = 500 * time.Millisecond
	// upper bound of a simulation, in case the reader never gets back to idle
	maxLength = time.Minute

	cell = 24
)

// Row is the strip as it looked at one point of the simulation.
type Row struct {
	At     time.Duration
	State  reader.State
	Pixels []led.Color
}

// frameWriter keeps the last frame committed to a strip.
type frameWriter struct {
	last []byte
}

func (f *frameWriter) Write(b []byte) (int, error) {
	f.last = append(f.last[:0], b...)
	return len(b), nil
}

func (f *frameWriter) pixels(n int) []led.Color {
	out := make([]led.Color, n)
	for i := 0; i < n && 3*i+2 < len(f.last); i++ {
		out[i] = led.Color{R: f.last[3*i], G: f.last[3*i+1], B: f.last[3*i+2]}
	}
	return out
}

// Simulate runs one tap cycle through a presenter on a virtual clock and samples the strip every sample interval.
// A playback of zero simulates a reader without storage.
func Simulate(cfg reader.Config, leds int, sample, playback time.Duration) []Row {
	if sample <= 0 {
		sample = cfg.RenderInterval
	}

	var (
		reg     reader.Register
		signals reader.Signals
		out     frameWriter
	)
	strip := led.NewStrip(leds, &out)
	p := reader.NewPresenter(cfg, strip, &reg, &signals, playback > 0)
	start := time.Now()

	var rows []Row
	tapped, left := false, false
	finishAt, doneAt := time.Duration(-1), time.Duration(-1)
	nextSample := time.Duration(0)

	for at := time.Duration(0); at <= maxLength; at += cfg.RenderInterval {
		if !tapped && at >= idleLead {
			log.Debugf("Card presented at %v", at)
			signals.CardDetected.Raise()
			tapped = true
		}
		if signals.StartPlayback.Take() {
			finishAt = at + playback
		}
		if finishAt >= 0 && at >= finishAt {
			signals.PlaybackFinished.Raise()
			finishAt = -1
		}

		p.Tick(start.Add(at))

		state := reg.Load()
		if state != reader.Idle {
			left = true
		} else if left && doneAt < 0 {
			doneAt = at
		}

		if at >= nextSample {
			rows = append(rows, Row{At: at, State: state, Pixels: out.pixels(leds)})
			nextSample += sample
		}
		if doneAt >= 0 && at >= doneAt+idleLead {
			break
		}
	}
	return rows
}

// Render draws the rows top to bottom. Each row has a marker for the state followed by the pixels. A width above
// zero scales the image to that width.
func Render(rows []Row, width uint) (image.Image, error) {
	if len(rows) == 0 {
		return nil, errors.New("nothing to render")
	}
	n := len(rows[0].Pixels)

	c := gg.NewContext((n+1)*cell, len(rows)*cell)
	c.SetRGB(0, 0, 0)
	c.Clear()

	for y, r := range rows {
		top := float64(y * cell)
		c.SetHexColor(stateColor(r.State).String())
		c.DrawRectangle(2, top+2, cell/2, cell-4)
		c.Fill()

		for x, px := range r.Pixels {
			c.SetRGB255(int(px.R), int(px.G), int(px.B))
			c.DrawCircle(float64((x+1)*cell)+cell/2, top+cell/2, cell/2-2)
			c.Fill()
		}
	}

	img := c.Image()
	if width > 0 {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}
	return img, nil
}

func stateColor(s reader.State) led.Color {
	switch s {
	case reader.CardDetected:
		return led.Yellow
	case reader.Success:
		return led.Green
	case reader.Error:
		return led.Red
	}
	return led.Color{R: 0x40, G: 0x40, B: 0x40}
}
