package sonos

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// LogEngine stands in for a speaker when none is configured. An asset that exists is considered to be playing for
// a fixed length of time.
type LogEngine struct {
	assets interface {
		Exists(name string) bool
	}
	length time.Duration
	now    func() time.Time
	until  time.Time
}

func NewLogEngine(assets interface{ Exists(name string) bool }, length time.Duration) *LogEngine {
	return &LogEngine{
		assets: assets,
		length: length,
		now:    time.Now,
	}
}

func (e *LogEngine) StartAsset(name string) bool {
	if !e.assets.Exists(name) {
		log.Warnf("Asset %v not found", name)
		return false
	}
	log.Infof("Playing %v", name)
	e.until = e.now().Add(e.length)
	return true
}

func (e *LogEngine) IsActive() bool {
	return e.now().Before(e.until)
}

func (e *LogEngine) Advance() {}

func (e *LogEngine) SetGain(level int) {
	log.Debugf("Gain set to %v", level)
}
