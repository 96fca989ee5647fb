package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/nfc-chime/led"
	"github.com/callebjorkell/nfc-chime/media"
	"github.com/callebjorkell/nfc-chime/nfc"
	"github.com/callebjorkell/nfc-chime/reader"
	"github.com/callebjorkell/nfc-chime/sonos"
	log "github.com/sirupsen/logrus"
)

func startReader() {
	cfg := readerConfig()
	ctx, cancel := signalContext()
	defer cancel()

	card, cardErr := nfc.Open(nfc.Config{
		Bus:      *spiBus,
		Device:   *spiDevice,
		SpeedHz:  *spiSpeed,
		ResetPin: *resetPin,
	})
	if cardErr == nil {
		defer card.Close()
	}

	strip, err := led.Open(*stripLength)
	if err != nil {
		log.Fatal("Could not open the LED strip: ", err)
	}
	defer strip.Close()

	taps, err := nfc.OpenTapLog(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer taps.Close()

	store := mediaStore()
	engine, stop := audioEngine(store)
	defer stop()

	r := reader.New(cfg, reader.Devices{
		Card:    card,
		CardErr: cardErr,
		Strip:   strip,
		Audio:   engine,
		Storage: store,
		Taps:    taps,
	})

	log.Infoln("Reader started")
	r.Run(ctx)
	log.Infoln("Reader stopped")
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case s := <-signalChan:
			log.Infof("Got %v, shutting down", s)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(signalChan)
	}()
	return ctx, cancel
}

func mediaStore() *media.Store {
	base := *advertise
	if base == "" && *zone != "" {
		guess, err := media.GuessBaseURL(*listen)
		if err != nil {
			log.Warn("Could not figure out where the speaker can reach the media: ", err)
		}
		base = guess
	}
	store := media.NewStore(*mediaDir, base)
	if !store.Available() {
		log.Warnf("Media directory %v is not readable", *mediaDir)
	}
	return store
}

// audioEngine plays on the configured sonos zone and serves the media for it. Without a zone, or if the zone can
// not be found, playback is only logged. The returned func shuts the media server down.
func audioEngine(store *media.Store) (reader.AudioEngine, func()) {
	if *zone == "" {
		return sonos.NewLogEngine(store, *chimeLength), func() {}
	}

	speaker, err := sonos.New(*zone)
	if err != nil {
		log.Errorf("Could not find zone %v, falling back to logging: %v", *zone, err)
		return sonos.NewLogEngine(store, *chimeLength), func() {}
	}
	log.Infof("Found speaker %v", speaker.Name())

	srv := &http.Server{Addr: *listen, Handler: store.Handler()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Media server failed: ", err)
		}
	}()

	return sonos.NewEngine(speaker, store, *pollInterval), func() {
		if err := speaker.Stop(); err != nil {
			log.Debugln("Could not stop the speaker:", err)
		}
		srv.Close()
	}
}
