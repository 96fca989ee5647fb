package reader

import (
	"testing"
	"time"

	"github.com/callebjorkell/nfc-chime/led"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1600000000, 0)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func newTestPresenter(playback bool) (*Presenter, *fakeStrip, *Register, *Signals) {
	strip := newFakeStrip(8)
	reg := &Register{}
	signals := &Signals{}
	return NewPresenter(DefaultConfig(), strip, reg, signals, playback), strip, reg, signals
}

func TestPresenterStartsIdle(t *testing.T) {
	p, strip, reg, _ := newTestPresenter(true)
	assert.Equal(t, Idle, reg.Load())
	assert.Equal(t, led.Fill(8, led.Black), strip.last().pixels)

	p.Tick(t0)
	f := strip.last()
	assert.Equal(t, uint8(65), f.brightness)
	assert.Equal(t, led.Blue, f.pixels[0])
	assert.Equal(t, led.Blue.Scale(22), f.pixels[1])
}

func TestPresenterFullCycle(t *testing.T) {
	p, strip, reg, signals := newTestPresenter(true)
	p.Tick(t0)

	signals.CardDetected.Raise()
	detected := t0.Add(ms(10))
	p.Tick(detected)
	require.Equal(t, CardDetected, reg.Load())
	assert.Equal(t, frame{led.Fill(8, led.Yellow), 2}, strip.last())

	p.Tick(detected.Add(time.Second))
	assert.Equal(t, frame{led.Fill(8, led.Yellow), 33}, strip.last())

	p.Tick(detected.Add(ms(1990)))
	assert.Equal(t, CardDetected, reg.Load())
	assert.False(t, signals.StartPlayback.Pending())

	p.Tick(detected.Add(ms(2000)))
	require.Equal(t, Success, reg.Load())
	assert.Equal(t, frame{led.Fill(8, led.Green), 65}, strip.last())
	assert.True(t, signals.StartPlayback.Take())

	p.Tick(detected.Add(ms(2010)))
	assert.Equal(t, Success, reg.Load())
	assert.False(t, signals.StartPlayback.Pending(), "start playback raised twice")

	// waits for the player as long as it takes
	p.Tick(detected.Add(time.Minute))
	assert.Equal(t, Success, reg.Load())

	signals.PlaybackFinished.Raise()
	p.Tick(detected.Add(time.Minute + ms(10)))
	require.Equal(t, Idle, reg.Load())
	f := strip.last()
	assert.Equal(t, uint8(65), f.brightness)
	assert.Equal(t, led.Blue, f.pixels[0])
	assert.Equal(t, 1, p.chase.index)
	assert.Equal(t, 1, p.chase.dir)
}

func TestPresenterWithoutPlayback(t *testing.T) {
	p, strip, reg, signals := newTestPresenter(false)

	signals.CardDetected.Raise()
	p.Tick(t0)
	p.Tick(t0.Add(ms(2000)))
	require.Equal(t, Success, reg.Load())
	assert.Equal(t, frame{led.Fill(8, led.Green), 65}, strip.last())
	assert.False(t, signals.StartPlayback.Pending())

	p.Tick(t0.Add(ms(2249)))
	assert.Equal(t, Success, reg.Load())

	p.Tick(t0.Add(ms(2250)))
	assert.Equal(t, Idle, reg.Load())
	assert.Equal(t, led.Blue, strip.last().pixels[0])
	assert.False(t, signals.StartPlayback.Pending())
}

func TestPresenterRenderIsIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Presenter, s *Signals)
	}{
		{"idle", func(p *Presenter, s *Signals) {}},
		{"card detected", func(p *Presenter, s *Signals) {
			s.CardDetected.Raise()
			p.Tick(t0.Add(-ms(500)))
		}},
		{"success", func(p *Presenter, s *Signals) {
			s.CardDetected.Raise()
			p.Tick(t0.Add(-ms(3000)))
			p.Tick(t0.Add(-ms(1)))
		}},
		{"error", func(p *Presenter, s *Signals) {
			p.Fail(t0.Add(-ms(1)))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, strip, _, signals := newTestPresenter(true)
			tc.setup(p, signals)

			p.Tick(t0)
			first := strip.last()
			p.Tick(t0)
			assert.Equal(t, first, strip.last())
		})
	}
}

func TestPresenterChaseInterval(t *testing.T) {
	p, strip, _, _ := newTestPresenter(true)
	p.Tick(t0)
	commits := strip.count()

	p.Tick(t0.Add(ms(110)))
	assert.Equal(t, commits, strip.count())

	p.Tick(t0.Add(ms(120)))
	assert.Equal(t, commits+1, strip.count())
	assert.Equal(t, led.Blue, strip.last().pixels[1])
}

func TestPresenterError(t *testing.T) {
	p, strip, reg, signals := newTestPresenter(true)
	p.Fail(t0)
	assert.Equal(t, Error, reg.Load())
	assert.Equal(t, frame{led.Fill(8, led.Red), 65}, strip.last())

	signals.CardDetected.Raise()
	signals.PlaybackFinished.Raise()
	for i := 0; i < 10; i++ {
		p.Tick(t0.Add(ms(i * 1000)))
	}
	assert.Equal(t, Error, reg.Load())
	assert.Equal(t, frame{led.Fill(8, led.Red), 65}, strip.last())
	assert.False(t, signals.CardDetected.Pending())
}

func TestPresenterIgnoresCardOutsideIdle(t *testing.T) {
	p, _, reg, signals := newTestPresenter(true)
	signals.CardDetected.Raise()
	p.Tick(t0)
	require.Equal(t, CardDetected, reg.Load())

	signals.CardDetected.Raise()
	p.Tick(t0.Add(ms(1000)))
	assert.Equal(t, CardDetected, reg.Load())
	assert.False(t, signals.CardDetected.Pending())

	// the ramp was not restarted by the second card
	p.Tick(t0.Add(ms(2000)))
	assert.Equal(t, Success, reg.Load())
}

func TestPresenterBackwardsClockHoldsRamp(t *testing.T) {
	p, strip, reg, signals := newTestPresenter(true)
	signals.CardDetected.Raise()
	p.Tick(t0)

	p.Tick(t0.Add(-time.Hour))
	assert.Equal(t, CardDetected, reg.Load())
	assert.Equal(t, uint8(2), strip.last().brightness)
}
