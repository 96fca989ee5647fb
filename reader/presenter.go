package reader

import (
	"context"
	"time"

	"github.com/callebjorkell/nfc-chime/led"
	log "github.com/sirupsen/logrus"
)

// Presenter owns the state register and the LED strip. It is the only unit that changes state.
type Presenter struct {
	cfg      Config
	strip    Strip
	reg      *Register
	signals  *Signals
	playback bool

	epoch time.Time
	chase chaser
}

// NewPresenter creates a presenter in the Idle state. When playback is false no StartPlayback is ever raised and
// Success returns to Idle on its own after the confirmation delay.
func NewPresenter(cfg Config, strip Strip, reg *Register, signals *Signals, playback bool) *Presenter {
	p := &Presenter{
		cfg:      cfg,
		strip:    strip,
		reg:      reg,
		signals:  signals,
		playback: playback,
	}
	p.resetToIdle(time.Now())
	return p
}

// Fail moves the presenter into the terminal Error state.
func (p *Presenter) Fail(now time.Time) {
	p.strip.SetBrightness(p.cfg.MaxBrightness)
	p.show(p.cfg.AlertColor)
	p.changeState(Error, now)
}

// Tick runs one presentation cycle: take signals, evaluate the timed transitions, then render.
func (p *Presenter) Tick(now time.Time) {
	cardDetected := p.signals.CardDetected.Take()
	playbackFinished := p.signals.PlaybackFinished.Take()

	state := p.reg.Load()
	if state == Error {
		return
	}

	if cardDetected && state == Idle {
		p.changeState(CardDetected, now)
	}
	if playbackFinished && state == Success {
		log.Debugln("Playback finished")
		p.resetToIdle(now)
	}

	state = p.reg.Load()
	elapsed := elapsedSince(p.epoch, now)
	switch state {
	case CardDetected:
		if rampComplete(elapsed, p.cfg.RampDuration) {
			p.transitionToSuccess(now)
			return
		}
	case Success:
		if !p.playback && elapsed >= p.cfg.ConfirmDelay {
			p.resetToIdle(now)
			state = Idle
		}
	}

	switch state {
	case Idle:
		p.runChaser(now)
	case CardDetected:
		p.runRamp(elapsed)
	}
}

// Run ticks the presenter every render interval until the context is done.
func (p *Presenter) Run(ctx context.Context) {
	t := time.NewTicker(p.cfg.RenderInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debugln("Presenter stopped. Returning.")
			return
		case now := <-t.C:
			p.Tick(now)
		}
	}
}

func (p *Presenter) changeState(s State, now time.Time) {
	if old := p.reg.Load(); old != s {
		log.Infof("State %v -> %v", old, s)
	}
	p.reg.store(s)
	p.epoch = now
}

func (p *Presenter) resetToIdle(now time.Time) {
	p.strip.SetBrightness(p.cfg.MaxBrightness)
	p.show(led.Black)
	p.chase.reset()
	p.changeState(Idle, now)
}

func (p *Presenter) transitionToSuccess(now time.Time) {
	p.strip.SetBrightness(p.cfg.MaxBrightness)
	p.show(p.cfg.SuccessColor)
	p.changeState(Success, now)
	if p.playback {
		p.signals.StartPlayback.Raise()
	}
}

func (p *Presenter) runChaser(now time.Time) {
	if !p.chase.due(now, p.cfg.ChaseInterval) {
		return
	}
	n := p.strip.Len()
	p.strip.SetPixels(p.chase.frame(n, p.cfg.ChaseColor, p.cfg.ChaseDim))
	p.commit()
	p.chase.advance(n)
	p.chase.lastFired = now
}

func (p *Presenter) runRamp(elapsed time.Duration) {
	p.strip.SetBrightness(rampBrightness(elapsed, p.cfg.RampDuration, p.cfg.MinBrightness, p.cfg.MaxBrightness))
	p.show(p.cfg.PendingColor)
}

func (p *Presenter) show(c led.Color) {
	p.strip.SetPixels(led.Fill(p.strip.Len(), c))
	p.commit()
}

func (p *Presenter) commit() {
	if err := p.strip.Commit(); err != nil {
		log.Warn("Could not commit LED frame: ", err)
	}
}
