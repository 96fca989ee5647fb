package main

import (
	"github.com/callebjorkell/nfc-chime/reader"
	log "github.com/sirupsen/logrus"
)

func playChime() {
	cfg := readerConfig()
	ctx, cancel := signalContext()
	defer cancel()

	store := mediaStore()
	if !store.Available() {
		log.Fatalf("Nothing to play, %v is not readable", *mediaDir)
	}
	engine, stop := audioEngine(store)
	defer stop()

	log.Infof("Playing %v", cfg.Asset)
	if reader.NewPlayer(cfg, engine, &reader.Signals{}).PlayOnce(ctx) {
		log.Infoln("Done")
	}
}
