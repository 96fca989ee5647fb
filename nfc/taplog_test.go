package nfc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/buntdb"
)

func openTestLog(t *testing.T) *TapLog {
	l, err := OpenTapLog(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordTap(t *testing.T) {
	l := openTestLog(t)
	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, l.Record("04A1B2C3", first))
	require.NoError(t, l.Record("04a1b2c3", first.Add(time.Minute)))

	tap, err := l.Read("04a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, 2, tap.Count)
	assert.True(t, first.Equal(tap.FirstSeen))
	assert.True(t, first.Add(time.Minute).Equal(tap.LastSeen))
	assert.Equal(t, "04A1B2C3", tap.CardID)
}

func TestReadAllOrdersByLastSeen(t *testing.T) {
	l := openTestLog(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, l.Record("aa", now))
	require.NoError(t, l.Record("bb", now.Add(time.Second)))
	require.NoError(t, l.Record("cc", now.Add(-time.Second)))

	taps, err := l.ReadAll()
	require.NoError(t, err)
	var ids []string
	for _, tap := range taps {
		ids = append(ids, tap.CardID)
	}
	assert.Equal(t, []string{"bb", "aa", "cc"}, ids)
}

func TestDeleteAndClear(t *testing.T) {
	l := openTestLog(t)
	now := time.Now()

	require.NoError(t, l.Record("aa", now))
	require.NoError(t, l.Record("bb", now))
	require.NoError(t, l.Record("cc", now))

	require.NoError(t, l.Delete("aa"))
	_, err := l.Read("aa")
	assert.Equal(t, buntdb.ErrNotFound, err)

	n, err := l.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	taps, err := l.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, taps)
}
