//go:build pi
// +build pi

package nfc

// MFRC522 spec can be found here: https://www.nxp.com/docs/en/data-sheet/MFRC522.pdf

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ecc1/spi"
	"github.com/jdevelop/golang-rpi-extras/rf522/commands"
	"github.com/jdevelop/gpio"
	rpio "github.com/jdevelop/gpio/rpi"
	log "github.com/sirupsen/logrus"
)

const (
	versionReg = 0x37

	piccReqIdl    = 0x26
	piccSelectCL1 = 0x93
	piccSelectCL2 = 0x95
	cascadeTag    = 0x88
)

var errTimeout = errors.New("timed out waiting for the card")

type rc522 struct {
	spiDev      *spi.Device
	reset       gpio.Pin
	antennaGain byte
}

// Open sets up the MFRC522 on the given SPI device and makes sure it answers. An error here means the reader is
// missing or miswired.
func Open(cfg Config) (CardReader, error) {
	dev, err := spi.Open(fmt.Sprintf("/dev/spidev%d.%d", cfg.Bus, cfg.Device), cfg.SpeedHz, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open SPI device: %v", err)
	}
	if err := dev.SetLSBFirst(false); err != nil {
		dev.Close()
		return nil, err
	}
	if err := dev.SetBitsPerWord(8); err != nil {
		dev.Close()
		return nil, err
	}

	pin, err := rpio.OpenPin(cfg.ResetPin, gpio.ModeOutput)
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("could not open reset pin %v: %v", cfg.ResetPin, err)
	}
	pin.Set()

	r := &rc522{
		spiDev:      dev,
		reset:       pin,
		antennaGain: 7,
	}
	if err := r.init(); err != nil {
		r.Close()
		return nil, fmt.Errorf("could not initialize MFRC522: %v", err)
	}

	v, err := r.devRead(versionReg)
	if err != nil {
		r.Close()
		return nil, err
	}
	if v == 0x00 || v == 0xFF {
		r.Close()
		return nil, fmt.Errorf("no MFRC522 found, version register reads %#02x", v)
	}
	log.Infof("Found MFRC522 version %#02x", v)
	return r, nil
}

func (r *rc522) Close() error {
	return r.spiDev.Close()
}

func (r *rc522) Poll(timeout time.Duration) (string, bool) {
	id, err := r.readCardID(time.Now().Add(timeout))
	if err != nil {
		if err != ErrNoCard && err != errTimeout {
			log.Debugf("error when reading card ID: %v", err)
		}
		return "", false
	}
	return id, true
}

func (r *rc522) readCardID(deadline time.Time) (string, error) {
	if err := r.init(); err != nil {
		return "", err
	}
	if err := r.request(deadline); err != nil {
		return "", err
	}
	uid, err := r.antiColl(deadline)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(uid), nil
}

func (r *rc522) init() error {
	writes := []struct {
		reg  int
		data byte
	}{
		{commands.CommandReg, commands.PCD_RESETPHASE},
		{0x2A, 0x8D}, // TModeReg
		{0x2B, 0x3E}, // TPrescalerReg
		{0x2D, 30},   // TReloadRegL
		{0x2C, 0},    // TReloadRegH
		{0x15, 0x40}, // TxASKReg
		{0x11, 0x3D}, // ModeReg
		{0x26, r.antennaGain << 4},
	}
	for _, w := range writes {
		if err := r.devWrite(w.reg, w.data); err != nil {
			return err
		}
	}
	return r.antennaOn()
}

func (r *rc522) transfer(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	err := r.spiDev.Transfer(out)
	return out, err
}

func (r *rc522) devWrite(address int, data byte) error {
	_, err := r.transfer([]byte{(byte(address) << 1) & 0x7E, data})
	return err
}

func (r *rc522) devRead(address int) (byte, error) {
	rb, err := r.transfer([]byte{((byte(address) << 1) & 0x7E) | 0x80, 0})
	if err != nil {
		return 0, err
	}
	return rb[1], nil
}

func (r *rc522) setBitmask(address int, mask byte) error {
	current, err := r.devRead(address)
	if err != nil {
		return err
	}
	return r.devWrite(address, current|mask)
}

func (r *rc522) clearBitmask(address int, mask byte) error {
	current, err := r.devRead(address)
	if err != nil {
		return err
	}
	return r.devWrite(address, current&^mask)
}

func (r *rc522) antennaOn() error {
	current, err := r.devRead(commands.TxControlReg)
	if err != nil {
		return err
	}
	if current&0x03 == 0 {
		return r.setBitmask(commands.TxControlReg, 0x03)
	}
	return nil
}

// transceive sends data to the card and reads the answer from the FIFO. It returns the answer and its length in
// bits.
func (r *rc522) transceive(deadline time.Time, data []byte) ([]byte, int, error) {
	const irqEn, irqWait = 0x77, 0x30

	setup := []func() error{
		func() error { return r.devWrite(commands.CommIEnReg, irqEn|0x80) },
		func() error { return r.clearBitmask(commands.CommIrqReg, 0x80) },
		func() error { return r.setBitmask(commands.FIFOLevelReg, 0x80) },
		func() error { return r.devWrite(commands.CommandReg, commands.PCD_IDLE) },
	}
	for _, f := range setup {
		if err := f(); err != nil {
			return nil, 0, err
		}
	}
	for _, v := range data {
		if err := r.devWrite(commands.FIFODataReg, v); err != nil {
			return nil, 0, err
		}
	}
	if err := r.devWrite(commands.CommandReg, commands.PCD_TRANSCEIVE); err != nil {
		return nil, 0, err
	}
	if err := r.setBitmask(commands.BitFramingReg, 0x80); err != nil {
		return nil, 0, err
	}

	var irq byte
	for {
		n, err := r.devRead(commands.CommIrqReg)
		if err != nil {
			return nil, 0, err
		}
		if n&(irqWait|0x01) != 0 {
			irq = n
			break
		}
		if time.Now().After(deadline) {
			r.clearBitmask(commands.BitFramingReg, 0x80)
			return nil, 0, errTimeout
		}
	}
	if err := r.clearBitmask(commands.BitFramingReg, 0x80); err != nil {
		return nil, 0, err
	}

	if e, err := r.devRead(commands.ErrorReg); err != nil {
		return nil, 0, err
	} else if e&0x1B != 0 {
		return nil, 0, fmt.Errorf("card error %#02x", e)
	}
	if irq&irqEn&0x01 != 0 {
		return nil, 0, ErrNoCard
	}

	n, err := r.devRead(commands.FIFOLevelReg)
	if err != nil {
		return nil, 0, err
	}
	lastBits, err := r.devRead(commands.ControlReg)
	if err != nil {
		return nil, 0, err
	}
	bits := int(n) * 8
	if lastBits&0x07 != 0 {
		bits = (int(n)-1)*8 + int(lastBits&0x07)
	}

	if n == 0 {
		n = 1
	}
	if n > 16 {
		n = 16
	}
	back := make([]byte, 0, n)
	for i := byte(0); i < n; i++ {
		b, err := r.devRead(commands.FIFODataReg)
		if err != nil {
			return nil, 0, err
		}
		back = append(back, b)
	}
	return back, bits, nil
}

// request wakes up a card in the field. A card answers with 16 bits of ATQA.
func (r *rc522) request(deadline time.Time) error {
	if err := r.devWrite(commands.BitFramingReg, 0x07); err != nil {
		return err
	}
	_, bits, err := r.transceive(deadline, []byte{piccReqIdl})
	if err != nil {
		return ErrNoCard
	}
	if bits != 0x10 {
		return fmt.Errorf("wrong number of bits %d", bits)
	}
	return nil
}

func (r *rc522) selectLevel(deadline time.Time, cmd byte) ([]byte, error) {
	if err := r.devWrite(commands.BitFramingReg, 0x00); err != nil {
		return nil, err
	}
	back, _, err := r.transceive(deadline, []byte{cmd, 0x20})
	if err != nil {
		return nil, err
	}
	if len(back) != 5 {
		return nil, fmt.Errorf("expected 5 bytes of UID, got %d", len(back))
	}
	if bcc := back[0] ^ back[1] ^ back[2] ^ back[3]; bcc != back[4] {
		return nil, fmt.Errorf("BCC mismatch, expected %02x actual %02x", bcc, back[4])
	}
	return back, nil
}

// antiColl reads the UID of the card. Single size UIDs are 4 bytes, double size UIDs need a second cascade level
// and come out as 7 bytes.
func (r *rc522) antiColl(deadline time.Time) ([]byte, error) {
	cl1, err := r.selectLevel(deadline, piccSelectCL1)
	if err != nil {
		return nil, err
	}
	if cl1[0] != cascadeTag {
		return cl1[:4], nil
	}

	log.Debug("cascade level 2 required")
	cmd := []byte{piccSelectCL1, 0x70, cl1[0], cl1[1], cl1[2], cl1[3], cl1[4]}
	crc, err := r.crc(deadline, cmd)
	if err != nil {
		return nil, err
	}
	sak, _, err := r.transceive(deadline, append(cmd, crc[0], crc[1]))
	if err != nil {
		return nil, err
	}
	if len(sak) == 0 || sak[0] != 0x04 {
		return nil, fmt.Errorf("unexpected select response: %x", sak)
	}

	cl2, err := r.selectLevel(deadline, piccSelectCL2)
	if err != nil {
		return nil, err
	}
	uid := make([]byte, 0, 7)
	uid = append(uid, cl1[1:4]...)
	uid = append(uid, cl2[:4]...)
	return uid, nil
}

func (r *rc522) crc(deadline time.Time, data []byte) ([]byte, error) {
	if err := r.clearBitmask(commands.DivIrqReg, 0x04); err != nil {
		return nil, err
	}
	if err := r.setBitmask(commands.FIFOLevelReg, 0x80); err != nil {
		return nil, err
	}
	for _, v := range data {
		if err := r.devWrite(commands.FIFODataReg, v); err != nil {
			return nil, err
		}
	}
	if err := r.devWrite(commands.CommandReg, commands.PCD_CALCCRC); err != nil {
		return nil, err
	}
	for {
		n, err := r.devRead(commands.DivIrqReg)
		if err != nil {
			return nil, err
		}
		if n&0x04 != 0 {
			break
		}
		if time.Now().After(deadline) {
			return nil, errTimeout
		}
	}

	lsb, err := r.devRead(commands.CRCResultRegL)
	if err != nil {
		return nil, err
	}
	msb, err := r.devRead(commands.CRCResultRegM)
	if err != nil {
		return nil, err
	}
	return []byte{lsb, msb}, nil
}
