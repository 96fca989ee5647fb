package reader

import "sync/atomic"

// Mailbox is a single slot notification. Raising a raised mailbox is a no-op, so repeated notifications collapse
// into one until the consumer takes it.
type Mailbox struct {
	set atomic.Bool
}

// Raise sets the mailbox. It reports false if it was already set.
func (m *Mailbox) Raise() bool {
	return m.set.CompareAndSwap(false, true)
}

// Take clears the mailbox and reports whether it was set.
func (m *Mailbox) Take() bool {
	return m.set.Swap(false)
}

// Pending reports whether the mailbox is set without consuming it.
func (m *Mailbox) Pending() bool {
	return m.set.Load()
}

// Signals are the notifications exchanged between the units.
//
//	CardDetected:     Sensor    -> Presenter
//	StartPlayback:    Presenter -> Player
//	PlaybackFinished: Player    -> Presenter
type Signals struct {
	CardDetected     Mailbox
	StartPlayback    Mailbox
	PlaybackFinished Mailbox
}
