package reader

import (
	"time"

	"github.com/callebjorkell/nfc-chime/led"
)

// Config holds the timing, brightness and playback settings of the reader.
type Config struct {
	MinBrightness uint8
	MaxBrightness uint8

	ChaseColor    led.Color
	ChaseDim      uint8
	ChaseInterval time.Duration
	PendingColor  led.Color
	RampDuration  time.Duration
	SuccessColor  led.Color
	AlertColor    led.Color
	// ConfirmDelay is how long Success is shown when there is no storage to play from.
	ConfirmDelay time.Duration

	RenderInterval time.Duration

	PollTimeout time.Duration
	Cooldown    time.Duration
	MissPause   time.Duration
	BusyPause   time.Duration

	Asset            string
	TargetGain       int
	GainStep         time.Duration
	StartPause       time.Duration
	SettlePause      time.Duration
	PlaybackInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinBrightness: 2,
		MaxBrightness: 65,

		ChaseColor:    led.Blue,
		ChaseDim:      22,
		ChaseInterval: 120 * time.Millisecond,
		PendingColor:  led.Yellow,
		RampDuration:  2000 * time.Millisecond,
		SuccessColor:  led.Green,
		AlertColor:    led.Red,
		ConfirmDelay:  250 * time.Millisecond,

		RenderInterval: 10 * time.Millisecond,

		PollTimeout: 50 * time.Millisecond,
		Cooldown:    300 * time.Millisecond,
		MissPause:   40 * time.Millisecond,
		BusyPause:   80 * time.Millisecond,

		Asset:            "success.mp3",
		TargetGain:       21,
		GainStep:         5 * time.Millisecond,
		StartPause:       10 * time.Millisecond,
		SettlePause:      20 * time.Millisecond,
		PlaybackInterval: 2 * time.Millisecond,
	}
}
