package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

func clearTaps(cardId string) {
	taps := openTapLog()
	defer taps.Close()

	if cardId != "" {
		if err := taps.Delete(cardId); err != nil {
			log.Warnf("Could not remove card %v: %v", cardId, err.Error())
			return
		}
		fmt.Printf("Removed card %v\n", cardId)
		return
	}

	n, err := taps.Clear()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Removed %v cards\n", n)
}
