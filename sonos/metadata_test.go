package sonos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMetadata(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		protocol string
	}{
		{"mp3", "http://10.0.0.2:8089/success.mp3", `protocolInfo="http-get:*:audio/mpeg:*"`},
		{"no extension", "http://10.0.0.2:8089/chime", `protocolInfo="http-get:*:audio/mpeg:*"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := CreateMetadata("success", tc.uri)
			require.NoError(t, err)
			s := string(m)
			assert.Contains(t, s, "<DIDL-Lite")
			assert.Contains(t, s, tc.protocol)
			assert.Contains(t, s, ">"+tc.uri+"</res>")
			assert.Contains(t, s, "<dc:title>success</dc:title>")
		})
	}
}
