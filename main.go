package main

import (
	"github.com/callebjorkell/nfc-chime/reader"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"os"
	"time"
)

var (
	app    = kingpin.New("nfc-chime", "Card reader that lights up an LED strip and plays a chime on a sonos speaker when an NFC card is presented.")
	debug  = app.Flag("debug", "Enable debug logging.").Envar("NFC_CHIME_DEBUG").Bool()
	dbPath = app.Flag("db", "Path of the tap history database.").Default("taps.db").Envar("NFC_CHIME_DB").String()

	stripLength  = app.Flag("leds", "Number of LEDs on the strip.").Default("8").Envar("NFC_CHIME_LEDS").Int()
	minBright    = app.Flag("min-brightness", "Brightness at the start of the confirmation ramp (0-255).").Default("2").Uint8()
	maxBright    = app.Flag("max-brightness", "Full brightness of the strip (0-255).").Default("65").Uint8()
	rampDuration = app.Flag("ramp", "Length of the confirmation ramp.").Default("2s").Duration()
	chaseStep    = app.Flag("chase-interval", "Time between steps of the idle chase.").Default("120ms").Duration()
	confirmDelay = app.Flag("confirm-delay", "How long success is shown when there is nothing to play.").Default("250ms").Duration()

	mediaDir     = app.Flag("media", "Directory holding the sounds.").Default("media").Envar("NFC_CHIME_MEDIA").String()
	asset        = app.Flag("asset", "Sound played when a card is accepted.").Default("success.mp3").Envar("NFC_CHIME_ASSET").String()
	zone         = app.Flag("zone", "Sonos zone to play on. Without a zone, playback is only logged.").Envar("NFC_CHIME_ZONE").String()
	listen       = app.Flag("listen", "Address the sounds are served on for the speaker.").Default(":8089").Envar("NFC_CHIME_LISTEN").String()
	advertise    = app.Flag("advertise", "Base URL the speaker reaches the sounds on. Guessed from the network interfaces if not set.").Envar("NFC_CHIME_ADVERTISE").String()
	volume       = app.Flag("volume", "Volume the chime is played at.").Default("21").Envar("NFC_CHIME_VOLUME").Int()
	chimeLength  = app.Flag("chime-length", "Assumed length of the chime when no speaker is used.").Default("1500ms").Duration()
	pollInterval = app.Flag("poll-interval", "How often the speaker is asked whether it is still playing.").Default("250ms").Duration()

	start     = app.Command("start", "Start the reader and start listening for NFC cards.")
	spiBus    = start.Flag("spi-bus", "SPI bus of the card reader.").Default("0").Int()
	spiDevice = start.Flag("spi-device", "SPI device of the card reader.").Default("0").Int()
	spiSpeed  = start.Flag("spi-speed", "SPI clock of the card reader in Hz.").Default("1000000").Int()
	resetPin  = start.Flag("reset-pin", "GPIO pin connected to the reset line of the card reader.").Default("22").Int()

	chime = app.Command("chime", "Play the confirmation sound once.")

	dump = app.Command("dump", "Dump the history of all cards that have been presented.")

	clearCmd  = app.Command("clear", "Remove cards from the tap history.")
	clearCard = clearCmd.Flag("card", "Only remove this card.").String()

	previewCmd      = app.Command("preview", "Render a full tap cycle of the LED effects into a PNG.")
	previewOut      = previewCmd.Flag("out", "File to write.").Default("preview.png").String()
	previewStep     = previewCmd.Flag("step", "Time between rendered rows.").Default("40ms").Duration()
	previewWidth    = previewCmd.Flag("width", "Scale the image to this width. 0 keeps the original size.").Default("0").Uint()
	previewPlayback = previewCmd.Flag("playback", "Length of the simulated playback. 0 simulates missing storage.").Default("1s").Duration()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case start.FullCommand():
		startReader()
	case chime.FullCommand():
		playChime()
	case dump.FullCommand():
		dumpAll()
	case clearCmd.FullCommand():
		clearTaps(*clearCard)
	case previewCmd.FullCommand():
		renderPreview()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
}

func readerConfig() reader.Config {
	cfg := reader.DefaultConfig()
	cfg.MinBrightness = *minBright
	cfg.MaxBrightness = *maxBright
	cfg.RampDuration = *rampDuration
	cfg.ChaseInterval = *chaseStep
	cfg.ConfirmDelay = *confirmDelay
	cfg.Asset = *asset
	cfg.TargetGain = *volume
	checkConfig(cfg)
	return cfg
}

func checkConfig(cfg reader.Config) {
	if *stripLength < 1 {
		kingpin.Fatalf("--leds must be at least 1, got %v", *stripLength)
	}
	if cfg.MinBrightness > cfg.MaxBrightness {
		kingpin.Fatalf("--min-brightness (%v) is above --max-brightness (%v)", cfg.MinBrightness, cfg.MaxBrightness)
	}
	for name, d := range map[string]time.Duration{
		"--ramp":           cfg.RampDuration,
		"--chase-interval": cfg.ChaseInterval,
		"--confirm-delay":  cfg.ConfirmDelay,
	} {
		if d <= 0 {
			kingpin.Fatalf("%v must be positive, got %v", name, d)
		}
	}
}
