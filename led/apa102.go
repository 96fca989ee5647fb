//go:build pi
// +build pi

package led

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/devices/apa102"
	"periph.io/x/periph/host"
)

// Open sets up an APA102 strip on the first SPI port.
func Open(numPixels int) (*Strip, error) {
	log.Infoln("Initializing LED strip")
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %v", err)
	}

	p, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("could not open SPI port: %v", err)
	}

	opts := apa102.DefaultOpts
	opts.NumPixels = numPixels
	// brightness is applied by the Strip so that all backends behave the same
	opts.Intensity = 255
	dev, err := apa102.New(p, &opts)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("could not create APA102 device: %v", err)
	}
	return NewStrip(numPixels, &apaWriter{dev: dev, port: p}), nil
}

type apaWriter struct {
	dev  *apa102.Dev
	port spi.PortCloser
}

func (a *apaWriter) Write(b []byte) (int, error) {
	return a.dev.Write(b)
}

func (a *apaWriter) Close() error {
	if err := a.dev.Halt(); err != nil {
		log.Warn("Could not halt the strip: ", err)
	}
	return a.port.Close()
}
