package main

import (
	"fmt"
	"time"

	"github.com/callebjorkell/nfc-chime/nfc"
	log "github.com/sirupsen/logrus"
)

func openTapLog() *nfc.TapLog {
	taps, err := nfc.OpenTapLog(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	return taps
}

func dumpAll() {
	taps := openTapLog()
	defer taps.Close()

	all, err := taps.ReadAll()
	if err != nil {
		log.Fatal(err)
	}

	if len(all) > 0 {
		fmt.Println("                  Card │  Taps  │     First seen      │      Last seen")
		fmt.Println("───────────────────────┼────────┼─────────────────────┼─────────────────────")
	} else {
		fmt.Println("No cards found in the database...")
	}
	for _, t := range all {
		fmt.Printf("%22v │ %6v │ %19v │ %v\n", t.CardID, t.Count, formatTime(t.FirstSeen), formatTime(t.LastSeen))
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
