// Package media is the storage the confirmation sounds are played from. Assets are plain files in a directory,
// served over HTTP so that a network speaker can fetch them.
package media

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("asset not found")

type Store struct {
	dir     string
	baseURL string
}

// NewStore creates a store for dir. baseURL is where Handler is reachable from the speaker, for example
// http://192.168.1.20:8089/.
func NewStore(dir, baseURL string) *Store {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Store{dir: dir, baseURL: baseURL}
}

// Available reports whether the media directory can be read.
func (s *Store) Available() bool {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return false
	}
	f, err := os.Open(s.dir)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Path returns the file path of the named asset, or ErrNotFound if there is no such regular file.
func (s *Store) Path(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", ErrNotFound
	}
	p := filepath.Join(s.dir, filepath.FromSlash(clean))
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return p, nil
}

func (s *Store) Exists(name string) bool {
	_, err := s.Path(name)
	return err == nil
}

// URL returns the address the named asset is served at.
func (s *Store) URL(name string) (string, error) {
	if s.baseURL == "" {
		return "", errors.New("no base URL configured")
	}
	if _, err := s.Path(name); err != nil {
		return "", err
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %v: %v", s.baseURL, err)
	}
	return u.ResolveReference(&url.URL{Path: strings.TrimPrefix(path.Clean("/"+name), "/")}).String(), nil
}

// Handler serves the assets in the store.
func (s *Store) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}

// GuessBaseURL builds a base URL from the first non loopback IPv4 address of this host.
func GuessBaseURL(listen string) (string, error) {
	_, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "", err
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		return fmt.Sprintf("http://%v/", net.JoinHostPort(ipNet.IP.String(), port)), nil
	}
	return "", errors.New("no usable network address found")
}
