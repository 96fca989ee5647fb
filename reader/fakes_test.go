package reader

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/callebjorkell/nfc-chime/led"
)

type frame struct {
	pixels     []led.Color
	brightness uint8
}

type fakeStrip struct {
	mu         sync.Mutex
	pixels     []led.Color
	brightness uint8
	commits    []frame
}

func newFakeStrip(n int) *fakeStrip {
	return &fakeStrip{pixels: make([]led.Color, n)}
}

func (f *fakeStrip) Len() int { return len(f.pixels) }

func (f *fakeStrip) SetPixels(p []led.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.pixels, p)
}

func (f *fakeStrip) SetBrightness(b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brightness = b
}

func (f *fakeStrip) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := make([]led.Color, len(f.pixels))
	copy(p, f.pixels)
	f.commits = append(f.commits, frame{pixels: p, brightness: f.brightness})
	return nil
}

func (f *fakeStrip) last() frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits[len(f.commits)-1]
}

func (f *fakeStrip) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commits)
}

// fakeEngine plays for a number of Advance calls.
type fakeEngine struct {
	starts    bool
	length    int
	remaining int
	gains     []int
	started   []string
	advances  int
}

func (e *fakeEngine) StartAsset(name string) bool {
	e.started = append(e.started, name)
	if !e.starts {
		return false
	}
	e.remaining = e.length
	return true
}

func (e *fakeEngine) IsActive() bool { return e.remaining > 0 }

func (e *fakeEngine) Advance() {
	e.advances++
	if e.remaining > 0 {
		e.remaining--
	}
}

func (e *fakeEngine) SetGain(level int) { e.gains = append(e.gains, level) }

type fakeStorage bool

func (s fakeStorage) Available() bool { return bool(s) }

type fakeCard struct {
	polls atomic.Int32
	ids   chan string
}

func newFakeCard() *fakeCard {
	return &fakeCard{ids: make(chan string, 4)}
}

func (c *fakeCard) Poll(time.Duration) (string, bool) {
	c.polls.Add(1)
	select {
	case id := <-c.ids:
		return id, true
	default:
		return "", false
	}
}

type fakeTaps struct {
	ids []string
}

func (f *fakeTaps) Record(id string, _ time.Time) error {
	f.ids = append(f.ids, id)
	return nil
}

func noSleep(time.Duration) {}
