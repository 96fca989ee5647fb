package reader

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Player owns the audio engine. It starts the confirmation asset when asked to and reports back once it is done.
type Player struct {
	cfg     Config
	engine  AudioEngine
	signals *Signals
	sleep   func(time.Duration)

	wasActive bool
}

func NewPlayer(cfg Config, engine AudioEngine, signals *Signals) *Player {
	return &Player{
		cfg:     cfg,
		engine:  engine,
		signals: signals,
		sleep:   time.Sleep,
	}
}

// step runs one playback cycle.
func (p *Player) step() {
	if p.engine.IsActive() {
		p.engine.Advance()
	}

	if p.signals.StartPlayback.Take() {
		p.start()
	}

	// edge triggered, so a finished engine only reports once
	active := p.engine.IsActive()
	if p.wasActive && !active {
		log.Debugln("Playback ended")
		p.signals.PlaybackFinished.Raise()
	}
	p.wasActive = active
}

func (p *Player) start() {
	p.engine.SetGain(0)
	p.sleep(p.cfg.StartPause)

	started := p.engine.StartAsset(p.cfg.Asset)
	p.sleep(p.cfg.SettlePause)

	if !started || !p.engine.IsActive() {
		log.Warnf("Could not play %v, skipping the chime", p.cfg.Asset)
		p.engine.SetGain(p.cfg.TargetGain)
		p.wasActive = false
		p.signals.PlaybackFinished.Raise()
		return
	}

	log.Debugf("Playing %v", p.cfg.Asset)
	for v := 0; v <= p.cfg.TargetGain; v++ {
		p.engine.SetGain(v)
		if p.engine.IsActive() {
			p.engine.Advance()
		}
		p.sleep(p.cfg.GainStep)
	}
	// counts as active even if the asset ended during the ramp, so the edge still fires
	p.wasActive = true
}

// PlayOnce plays the asset a single time and returns when the player reports it finished. It returns false if
// the context is done first.
func (p *Player) PlayOnce(ctx context.Context) bool {
	p.signals.StartPlayback.Raise()
	t := time.NewTicker(p.cfg.PlaybackInterval)
	defer t.Stop()
	for {
		p.step()
		if p.signals.PlaybackFinished.Take() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}
}

func (p *Player) Run(ctx context.Context) {
	t := time.NewTicker(p.cfg.PlaybackInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debugln("Player stopped. Returning.")
			return
		case <-t.C:
			p.step()
		}
	}
}
