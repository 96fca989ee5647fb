//go:build !pi
// +build !pi

package nfc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockReaderPresentsCardPeriodically(t *testing.T) {
	m := &mockReader{every: time.Hour, next: time.Now().Add(-time.Millisecond)}

	id, ok := m.Poll(10 * time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, mockCardID, id)

	start := time.Now()
	_, ok = m.Poll(10 * time.Millisecond)
	assert.False(t, ok)
	assert.True(t, time.Since(start) < time.Second, "poll blocked past its timeout")
}
