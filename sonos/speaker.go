package sonos

import (
	"fmt"
	"strconv"

	"github.com/huin/goupnp"
	"github.com/huin/goupnp/soap"
	log "github.com/sirupsen/logrus"
)

/*
 * I would probably have given up on trying to figure out most of this stuff if it wasn't for the excellent PHP library
 * made by Craig Duncan (https://github.com/duncan3dc/sonos). This served as a blueprint for what to pass and where
 * to make the sonos speakers do my bidding :)
 */

type Speaker struct {
	control   *service
	rendering *service
	name      string
	uid       string
}

// New finds the speaker for the given zone on the local network.
func New(zone string) (*Speaker, error) {
	d, err := goupnp.DiscoverDevices("urn:schemas-upnp-org:device:ZonePlayer:1")
	if err != nil {
		return nil, fmt.Errorf("could not discover speakers: %v", err)
	}
	log.Debugf("Inspecting %v devices", len(d))
	for _, dev := range d {
		if dev.Err != nil {
			log.Debugf("Skipping %v: %v", dev.Location, dev.Err)
			continue
		}
		root, err := goupnp.DeviceByURL(dev.Location)
		if err != nil {
			log.Warnf("Could not retrieve %v, speaker went away?", dev.Location)
			continue
		}
		log.Debugf("Checking device: %v", root.Device.FriendlyName)

		props, err := getService(root, "DeviceProperties")
		if err != nil {
			log.Warnf("Skipping %v: %v", root.Device.FriendlyName, err)
			continue
		}

		out := struct {
			CurrentZoneName string
		}{}
		if err := props.Action("GetZoneAttributes", nil, &out); err != nil {
			log.Warnf("Could not get the zone of %v: %v", root.Device.FriendlyName, err)
			continue
		}
		if out.CurrentZoneName != zone {
			continue
		}

		control, err := getService(root, "AVTransport")
		if err != nil {
			return nil, err
		}
		rendering, err := getService(root, "RenderingControl")
		if err != nil {
			return nil, err
		}
		uid := root.Device.UDN
		if len(uid) > 5 {
			uid = uid[5:] // trim away the "uuid:" prefix
		}
		log.Infof("Found speaker for zone %v (%v)", zone, uid)
		return &Speaker{
			control:   control,
			rendering: rendering,
			name:      zone,
			uid:       uid,
		}, nil
	}
	return nil, fmt.Errorf("no speakers found for zone %v", zone)
}

func (s *Speaker) Name() string {
	return s.name
}

// PlayURI replaces whatever the speaker is doing with the given URI and starts playing it.
func (s *Speaker) PlayURI(uri string, metadata []byte) error {
	in := struct {
		InstanceID         string
		CurrentURI         string
		CurrentURIMetaData string
	}{
		"0",
		uri,
		string(metadata),
	}
	if err := s.control.Action("SetAVTransportURI", in, nil); err != nil {
		return fmt.Errorf("could not set the transport URI: %v", err)
	}

	play := struct {
		InstanceID string
		Speed      string
	}{
		"0",
		"1",
	}
	if err := s.control.Action("Play", play, nil); err != nil {
		return fmt.Errorf("could not start playing: %v", err)
	}
	return nil
}

func (s *Speaker) Stop() error {
	in := struct {
		InstanceID string
	}{
		"0",
	}
	return s.control.Action("Stop", in, nil)
}

// TransportState returns the UPnP transport state, e.g. PLAYING, TRANSITIONING or STOPPED.
func (s *Speaker) TransportState() (string, error) {
	in := struct {
		InstanceID string
	}{
		"0",
	}
	out := struct {
		CurrentTransportState  string
		CurrentTransportStatus string
		CurrentSpeed           string
	}{}
	err := s.control.Action("GetTransportInfo", &in, &out)
	return out.CurrentTransportState, err
}

func (s *Speaker) SetVolume(volume int) error {
	in := struct {
		InstanceID    string
		Channel       string
		DesiredVolume string
	}{
		"0",
		"Master",
		strconv.Itoa(volume),
	}
	return s.rendering.Action("SetVolume", in, nil)
}

func getService(dev *goupnp.RootDevice, id string) (*service, error) {
	namespace := fmt.Sprintf("urn:schemas-upnp-org:service:%v:1", id)
	s := dev.Device.FindService(namespace)
	if len(s) > 1 {
		return nil, fmt.Errorf("got %v services instead of the expected maximum of 1", len(s))
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("service %v not found", id)
	}

	return &service{
		SOAPClient: s[0].NewSOAPClient(),
		namespace:  namespace,
	}, nil
}

type service struct {
	*soap.SOAPClient
	namespace string
}

func (s *service) Action(name string, in interface{}, out interface{}) error {
	return s.SOAPClient.PerformAction(s.namespace, name, in, out)
}
