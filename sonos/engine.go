package sonos

import (
	"path"
	"time"

	log "github.com/sirupsen/logrus"
)

// Assets resolves asset names to locations the speaker can fetch.
type Assets interface {
	URL(name string) (string, error)
}

type transport interface {
	PlayURI(uri string, metadata []byte) error
	TransportState() (string, error)
	SetVolume(volume int) error
}

// Engine plays assets on a speaker. The speaker does the actual streaming, so advancing the engine only means
// keeping track of the transport state, which is polled at most once per poll interval.
type Engine struct {
	speaker      transport
	assets       Assets
	pollInterval time.Duration
	now          func() time.Time

	active   bool
	lastPoll time.Time
	gain     int
}

func NewEngine(speaker *Speaker, assets Assets, pollInterval time.Duration) *Engine {
	return newEngine(speaker, assets, pollInterval)
}

func newEngine(t transport, assets Assets, pollInterval time.Duration) *Engine {
	return &Engine{
		speaker:      t,
		assets:       assets,
		pollInterval: pollInterval,
		now:          time.Now,
		gain:         -1,
	}
}

func (e *Engine) StartAsset(name string) bool {
	uri, err := e.assets.URL(name)
	if err != nil {
		log.Warnf("Cannot play %v: %v", name, err)
		return false
	}
	meta, err := CreateMetadata(path.Base(name), uri)
	if err != nil {
		log.Warn("Unable to generate DIDL: ", err)
	}
	if err := e.speaker.PlayURI(uri, meta); err != nil {
		log.Warn(err)
		e.active = false
		return false
	}
	log.Debugf("Speaker playing %v", uri)
	// the speaker needs a moment before it reports PLAYING, so count it as playing until the first poll
	e.active = true
	e.lastPoll = e.now()
	return true
}

func (e *Engine) IsActive() bool {
	return e.active
}

func (e *Engine) Advance() {
	if !e.active {
		return
	}
	now := e.now()
	if now.Sub(e.lastPoll) < e.pollInterval {
		return
	}
	e.lastPoll = now

	state, err := e.speaker.TransportState()
	if err != nil {
		log.Warn("Could not get the transport state: ", err)
		e.active = false
		return
	}
	e.active = state == "PLAYING" || state == "TRANSITIONING"
	if !e.active {
		log.Debugf("Speaker is %v", state)
	}
}

func (e *Engine) SetGain(level int) {
	if level == e.gain {
		return
	}
	if err := e.speaker.SetVolume(level); err != nil {
		log.Warn("Could not set the volume: ", err)
		return
	}
	e.gain = level
}
