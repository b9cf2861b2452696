package jlt4013a

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/jlt4013a/st7701s"
)

var errInvalid = errors.New("invalid argument")

type spiConn struct {
	tx [][]byte
	// ok is false when the word size is unsupported by the controller.
	ok bool
}

func (c *spiConn) String() string { return "spiConn" }

func (c *spiConn) Duplex() conn.Duplex { return conn.Half }

func (c *spiConn) Tx(w, r []byte) error {
	if !c.ok {
		return errInvalid
	}
	c.tx = append(c.tx, append([]byte(nil), w...))
	return nil
}

func (c *spiConn) TxPackets(p []spi.Packet) error {
	for _, pk := range p {
		if err := c.Tx(pk.W, pk.R); err != nil {
			return err
		}
	}
	return nil
}

// spiPort can be connected once.
//
// Word sizes in refuse fail in Connect, like an FT232H. When txBits is set,
// Connect accepts any size and only the listed ones work in Tx, like spidev.
type spiPort struct {
	refuse    map[int]bool
	txBits    map[int]bool
	connected bool
	conn      spiConn
	hz        physic.Frequency
	mode      spi.Mode
	bits      []int
	limited   physic.Frequency
}

func (p *spiPort) String() string { return "spiPort" }

func (p *spiPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.bits = append(p.bits, bits)
	if p.connected {
		return nil, errors.New("can only be called exactly once")
	}
	if p.refuse[bits] {
		return nil, errors.New("unsupported bits per word")
	}
	p.connected = true
	p.hz, p.mode = f, mode
	p.conn.ok = p.txBits == nil || p.txBits[bits]
	return &p.conn, nil
}

func (p *spiPort) LimitSpeed(f physic.Frequency) error {
	p.limited = f
	return nil
}

func newSPIRig(t *testing.T, p *spiPort, opts *Opts) *Dev {
	t.Helper()
	ev := &events{}
	dev, err := NewSPI(p, &recPin{Pin: &gpiotest.Pin{N: "RST"}, ev: ev}, &fakeSupply{ev: ev}, opts)
	if err != nil {
		t.Fatal(err)
	}
	dev.sleep = func(time.Duration) {}
	return dev
}

func TestNewSPINineBit(t *testing.T) {
	p := &spiPort{}
	dev := newSPIRig(t, p, &Opts{MaxHz: 2 * physic.MegaHertz, Bits: 9})
	if len(p.bits) != 1 || p.bits[0] != 9 {
		t.Errorf("Connect bits = %v, want [9]", p.bits)
	}
	if p.hz != 2*physic.MegaHertz || p.mode != spi.Mode0 {
		t.Errorf("Connect(%s, %s)", p.hz, p.mode)
	}
	if err := dev.Prepare(); err != nil {
		t.Fatal(err)
	}
	// SLPOUT as one little-endian 16-bit unit.
	if got, want := p.conn.tx[0], []byte{0x11, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("first transfer = % X, want % X", got, want)
	}
	if got, want := len(p.conn.tx), len(st7701s.JLT4013A.Words()); got != want {
		t.Errorf("%d transfers, want %d", got, want)
	}
}

func TestNewSPIPackedFallback(t *testing.T) {
	p := &spiPort{refuse: map[int]bool{9: true}}
	dev := newSPIRig(t, p, nil)
	if len(p.bits) != 2 || p.bits[0] != 9 || p.bits[1] != 8 {
		t.Errorf("Connect bits = %v, want [9 8]", p.bits)
	}
	if p.hz != physic.MegaHertz {
		t.Errorf("Connect hz = %s, want default", p.hz)
	}
	if err := dev.Prepare(); err != nil {
		t.Fatal(err)
	}
	if got, want := p.conn.tx[0], []byte{0x08, 0x80}; !bytes.Equal(got, want) {
		t.Errorf("first transfer = % X, want % X", got, want)
	}
}

func TestNewSPISpidevPacked(t *testing.T) {
	p := &spiPort{txBits: map[int]bool{8: true}}
	dev := newSPIRig(t, p, &Opts{Bits: 8})
	if len(p.bits) != 1 || p.bits[0] != 8 {
		t.Errorf("Connect bits = %v, want [8]", p.bits)
	}
	if err := dev.Prepare(); err != nil {
		t.Fatal(err)
	}
	if got, want := p.conn.tx[0], []byte{0x08, 0x80}; !bytes.Equal(got, want) {
		t.Errorf("first transfer = % X, want % X", got, want)
	}
	if got, want := len(p.conn.tx), len(st7701s.JLT4013A.Words()); got != want {
		t.Errorf("%d transfers, want %d", got, want)
	}
}

func TestNewSPISpidevNotProbed(t *testing.T) {
	// spidev takes 9 bits in Connect and fails in Tx, so without an explicit
	// word size the first transfer fails and nothing is retried.
	p := &spiPort{txBits: map[int]bool{8: true}}
	dev := newSPIRig(t, p, nil)
	if len(p.bits) != 1 || p.bits[0] != 9 {
		t.Errorf("Connect bits = %v, want [9]", p.bits)
	}
	err := dev.Prepare()
	var be *BusError
	if !errors.As(err, &be) {
		t.Fatalf("Prepare() = %v, want *BusError", err)
	}
	if be.Word != st7701s.Encode(st7701s.Command, st7701s.SLPOUT) || !errors.Is(err, errInvalid) {
		t.Errorf("Prepare() = %v", err)
	}
	if len(p.bits) != 1 {
		t.Errorf("Connect called again: %v", p.bits)
	}
}

func TestNewSPIExplicitBitsNoFallback(t *testing.T) {
	p := &spiPort{refuse: map[int]bool{9: true}}
	ev := &events{}
	if _, err := NewSPI(p, &recPin{Pin: &gpiotest.Pin{N: "RST"}, ev: ev}, &fakeSupply{ev: ev}, &Opts{Bits: 9}); err == nil {
		t.Fatal("NewSPI should fail when 9 bits are required and refused")
	}
	if len(p.bits) != 1 {
		t.Errorf("Connect bits = %v, want a single attempt", p.bits)
	}
}

func TestNewSPIConnectFailure(t *testing.T) {
	p := &spiPort{refuse: map[int]bool{8: true, 9: true}}
	ev := &events{}
	_, err := NewSPI(p, &recPin{Pin: &gpiotest.Pin{N: "RST"}, ev: ev}, &fakeSupply{ev: ev}, nil)
	if err == nil {
		t.Fatal("NewSPI should fail when the port refuses every word size")
	}
}

func TestNewSPIBadOpts(t *testing.T) {
	p := &spiPort{}
	ev := &events{}
	_, err := NewSPI(p, &recPin{Pin: &gpiotest.Pin{N: "RST"}, ev: ev}, &fakeSupply{ev: ev}, &Opts{ResetHold: 1})
	if err == nil {
		t.Fatal("NewSPI should reject invalid options")
	}
	_, err = NewSPI(p, &recPin{Pin: &gpiotest.Pin{N: "RST"}, ev: ev}, &fakeSupply{ev: ev}, &Opts{Bits: 16})
	if err == nil {
		t.Fatal("NewSPI should reject 16 bits per word")
	}
	if len(p.bits) != 0 {
		t.Errorf("port connected despite invalid options")
	}
}
