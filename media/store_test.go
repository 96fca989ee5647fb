package media

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, string) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "success.mp3"), []byte("ID3"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	return NewStore(dir, "http://10.0.0.2:8089"), dir
}

func TestAvailable(t *testing.T) {
	s, dir := testStore(t)
	assert.True(t, s.Available())
	assert.False(t, NewStore(filepath.Join(dir, "missing"), "").Available())
	assert.False(t, NewStore(filepath.Join(dir, "success.mp3"), "").Available())
}

func TestExists(t *testing.T) {
	s, _ := testStore(t)
	assert.True(t, s.Exists("success.mp3"))
	assert.True(t, s.Exists("/success.mp3"))
	assert.False(t, s.Exists("missing.mp3"))
	assert.False(t, s.Exists("sub"))
	assert.False(t, s.Exists(""))
	assert.False(t, s.Exists("../success.mp3/.."))
}

func TestURL(t *testing.T) {
	s, _ := testStore(t)

	u, err := s.URL("success.mp3")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8089/success.mp3", u)

	_, err = s.URL("missing.mp3")
	assert.Equal(t, ErrNotFound, err)

	_, err = NewStore(t.TempDir(), "").URL("success.mp3")
	assert.Error(t, err)
}

func TestHandlerServesAssets(t *testing.T) {
	s, _ := testStore(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/success.mp3")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := ioutil.ReadAll(res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ID3", string(body))
}
