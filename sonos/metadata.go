package sonos

import (
	"encoding/xml"
	"mime"
	"net/url"
	"path"
)

type didlRes struct {
	ProtocolInfo string `xml:"protocolInfo,attr"`
	Value        string `xml:",chardata"`
}

type didlItem struct {
	ID         string  `xml:"id,attr"`
	ParentID   string  `xml:"parentID,attr"`
	Restricted string  `xml:"restricted,attr"`
	Title      string  `xml:"dc:title"`
	Class      string  `xml:"upnp:class"`
	Res        didlRes `xml:"res"`
}

type didlPayload struct {
	XMLName xml.Name
	Dc      string   `xml:"xmlns:dc,attr"`
	Upnp    string   `xml:"xmlns:upnp,attr"`
	Ns      string   `xml:"xmlns,attr"`
	Item    didlItem `xml:"item"`
}

// CreateMetadata describes a single audio file served over HTTP, so that the speaker knows what it is playing.
func CreateMetadata(title, uri string) ([]byte, error) {
	didl := didlPayload{
		XMLName: xml.Name{Local: "DIDL-Lite"},
		Dc:      "http://purl.org/dc/elements/1.1/",
		Upnp:    "urn:schemas-upnp-org:metadata-1-0/upnp/",
		Ns:      "urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/",
		Item: didlItem{
			ID:         "-1",
			ParentID:   "-1",
			Restricted: "true",
			Title:      title,
			Class:      "object.item.audioItem.musicTrack",
			Res: didlRes{
				ProtocolInfo: "http-get:*:" + mimeType(uri) + ":*",
				Value:        uri,
			},
		},
	}
	return xml.Marshal(didl)
}

func mimeType(uri string) string {
	p := uri
	if u, err := url.Parse(uri); err == nil {
		p = u.Path
	}
	if t := mime.TypeByExtension(path.Ext(p)); t != "" {
		return t
	}
	return "audio/mpeg"
}
