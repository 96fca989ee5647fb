package nfc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/buntdb"
)

const tapPrefix = "tap:"

// Tap is the history of a single card.
type Tap struct {
	CardID    string    `json:"id"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// TapLog keeps track of the cards that have been presented to the reader.
type TapLog struct {
	instance *buntdb.DB
}

// OpenTapLog opens or creates the tap log at path. Use ":memory:" for a log that is not persisted.
func OpenTapLog(path string) (*TapLog, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open tap log %v: %v", path, err)
	}
	return &TapLog{instance: db}, nil
}

func (l *TapLog) Close() error {
	return l.instance.Close()
}

// Record counts a tap of the given card.
func (l *TapLog) Record(id string, at time.Time) error {
	return l.instance.Update(func(tx *buntdb.Tx) error {
		t := Tap{CardID: id, FirstSeen: at}
		s, err := tx.Get(tapKey(id))
		switch err {
		case nil:
			if err := json.Unmarshal([]byte(s), &t); err != nil {
				return err
			}
		case buntdb.ErrNotFound:
		default:
			return err
		}

		t.Count++
		t.LastSeen = at
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(tapKey(id), string(data), nil)
		return err
	})
}

func (l *TapLog) Read(id string) (Tap, error) {
	var t Tap
	err := l.instance.View(func(tx *buntdb.Tx) error {
		s, err := tx.Get(tapKey(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(s), &t)
	})
	return t, err
}

// ReadAll returns every recorded card, most recently seen first.
func (l *TapLog) ReadAll() ([]Tap, error) {
	var taps []Tap
	err := l.instance.View(func(tx *buntdb.Tx) error {
		var inner error
		err := tx.AscendKeys(tapPrefix+"*", func(key, value string) bool {
			var t Tap
			if inner = json.Unmarshal([]byte(value), &t); inner != nil {
				return false
			}
			taps = append(taps, t)
			return true
		})
		if err != nil {
			return err
		}
		return inner
	})
	sort.Slice(taps, func(i, j int) bool {
		return taps[i].LastSeen.After(taps[j].LastSeen)
	})
	return taps, err
}

func (l *TapLog) Delete(id string) error {
	return l.instance.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(tapKey(id))
		return err
	})
}

// Clear removes all recorded taps and returns how many cards were removed.
func (l *TapLog) Clear() (int, error) {
	var keys []string
	err := l.instance.Update(func(tx *buntdb.Tx) error {
		err := tx.AscendKeys(tapPrefix+"*", func(key, _ string) bool {
			keys = append(keys, key)
			return true
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if _, err := tx.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	return len(keys), err
}

func tapKey(id string) string {
	return tapPrefix + strings.ToLower(id)
}
