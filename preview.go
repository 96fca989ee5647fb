package main

import (
	"github.com/callebjorkell/nfc-chime/preview"
	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
)

func renderPreview() {
	rows := preview.Simulate(readerConfig(), *stripLength, *previewStep, *previewPlayback)
	log.Debugf("Simulated %v rows", len(rows))

	img, err := preview.Render(rows, *previewWidth)
	if err != nil {
		log.Fatal(err)
	}
	if err := gg.SavePNG(*previewOut, img); err != nil {
		log.Fatalf("could not write %v: %v", *previewOut, err)
	}
	log.Infof("Wrote %v", *previewOut)
}
