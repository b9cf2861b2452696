// Package jlt4013a controls a Jinglitai JLT4013A 480x800 RGB LCD panel.
//
// The panel is built around a Sitronix ST7701S controller programmed over
// 3-wire SPI. Pixels travel over a separate parallel RGB bus that this
// package does not handle.
//
// See doc.go for wiring and usage.
package jlt4013a

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/jlt4013a/st7701s"
)

// Compatible is the hardware identifier of the panel.
const Compatible = "jinglitai,jlt4013a"

// State is the panel lifecycle state as seen by a display pipeline.
type State int

const (
	Unprepared State = iota
	Prepared
	Enabled
	Disabled
)

func (s State) String() string {
	switch s {
	case Unprepared:
		return "unprepared"
	case Prepared:
		return "prepared"
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Opts is the configuration for the panel.
//
// Zero fields take the value from DefaultOpts.
type Opts struct {
	// SPI clock (default: 1MHz)
	MaxHz physic.Frequency

	// Bits per SPI word used by NewSPI: 9 for controllers that clock 9-bit
	// words natively, 8 to bit-pack every word into two bytes. Zero tries 9
	// and reconnects at 8 if Connect refuses.
	//
	// Linux spidev accepts any word size in Connect and only fails in Tx, and
	// a sysfs port can be connected once. Set Bits explicitly there; the
	// Raspberry Pi SPI controller needs 8.
	Bits int

	// Reset line polarity. The reset is asserted high unless set.
	ResetActiveLow bool

	// Settle delays around power-up and reset.
	PowerSettle time.Duration // After the supply is enabled (default: 120ms)
	ResetHold   time.Duration // Reset asserted, 30ms to 120ms (default: 120ms)
	ResetSettle time.Duration // After reset is released (default: 120ms)

	// Logger receives lifecycle events and failures (default: discarded)
	Logger logrus.FieldLogger
}

// DefaultOpts is the vendor recommended configuration.
var DefaultOpts = Opts{
	MaxHz:       physic.MegaHertz,
	PowerSettle: 120 * time.Millisecond,
	ResetHold:   120 * time.Millisecond,
	ResetSettle: 120 * time.Millisecond,
}

const (
	minResetHold = 30 * time.Millisecond
	maxResetHold = 120 * time.Millisecond
)

func (o *Opts) withDefaults() (Opts, error) {
	var r Opts
	if o != nil {
		r = *o
	}
	if r.MaxHz == 0 {
		r.MaxHz = DefaultOpts.MaxHz
	}
	if r.PowerSettle == 0 {
		r.PowerSettle = DefaultOpts.PowerSettle
	}
	if r.ResetHold == 0 {
		r.ResetHold = DefaultOpts.ResetHold
	}
	if r.ResetSettle == 0 {
		r.ResetSettle = DefaultOpts.ResetSettle
	}
	if r.Bits != 0 && r.Bits != 8 && r.Bits != 9 {
		return r, fmt.Errorf("jlt4013a: Bits must be 8 or 9, got %d", r.Bits)
	}
	if r.MaxHz < 0 {
		return r, errors.New("jlt4013a: MaxHz must be positive")
	}
	if r.ResetHold < minResetHold || r.ResetHold > maxResetHold {
		return r, fmt.Errorf("jlt4013a: ResetHold must be between %s and %s", minResetHold, maxResetHold)
	}
	if r.PowerSettle < 0 || r.ResetSettle < 0 {
		return r, errors.New("jlt4013a: settle delays must not be negative")
	}
	if r.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.Logger = l
	}
	return r, nil
}

// Dev is a handle to the panel.
//
// Dev is not safe for concurrent use. The display pipeline owning it must
// serialize calls.
type Dev struct {
	ctrl  *st7701s.Controller
	rst   gpio.PinOut
	power Supply
	opts  Opts
	log   logrus.FieldLogger
	sleep func(time.Duration)

	state State
	// powered is true while the supply is on, including after a failed
	// Prepare.
	powered bool
}

// NewSPI returns a panel whose controller is on SPI port p.
//
// The port is connected in Mode0 with opts.Bits per word. With 8 bits the
// words are bit-packed. When opts.Bits is zero a port refusing 9 bits in
// Connect is reconnected at 8.
//
// rst is driven to the released level immediately. opts can be nil.
func NewSPI(p spi.Port, rst gpio.PinOut, power Supply, opts *Opts) (*Dev, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	var t st7701s.Transport
	switch o.Bits {
	case 8:
		c, err := p.Connect(o.MaxHz, spi.Mode0, 8)
		if err != nil {
			return nil, fmt.Errorf("jlt4013a: failed to connect SPI: %w", err)
		}
		t = st7701s.NewPacked(c)
	case 9:
		c, err := p.Connect(o.MaxHz, spi.Mode0, 9)
		if err != nil {
			return nil, fmt.Errorf("jlt4013a: failed to connect SPI: %w", err)
		}
		t = st7701s.NewSPI(c)
	default:
		c, err := p.Connect(o.MaxHz, spi.Mode0, 9)
		if err == nil {
			t = st7701s.NewSPI(c)
			break
		}
		o.Logger.WithError(err).Debug("jlt4013a: 9-bit words refused, packing into bytes")
		c8, err8 := p.Connect(o.MaxHz, spi.Mode0, 8)
		if err8 != nil {
			return nil, fmt.Errorf("jlt4013a: failed to connect SPI: %w", errors.Join(err, err8))
		}
		t = st7701s.NewPacked(c8)
	}
	return New(t, rst, power, &o)
}

// New returns a panel whose controller is reached through t.
func New(t st7701s.Transport, rst gpio.PinOut, power Supply, opts *Opts) (*Dev, error) {
	if t == nil || rst == nil || power == nil {
		return nil, errors.New("jlt4013a: transport, reset pin and supply are required")
	}
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	d := &Dev{
		rst:   rst,
		power: power,
		opts:  o,
		log:   o.Logger,
		sleep: time.Sleep,
	}
	d.ctrl = st7701s.NewController(t, func(dur time.Duration) { d.sleep(dur) })
	if err := d.setReset(false); err != nil {
		return nil, err
	}
	return d, nil
}

// Prepare powers the panel up, resets the controller and programs it.
//
// On failure the panel stays Unprepared. If the supply had already been
// switched on, Unprepare must be called before trying again.
func (d *Dev) Prepare() error {
	if d.state != Unprepared || d.powered {
		return &StateError{Op: "prepare", State: d.state}
	}

	if err := d.power.Enable(); err != nil {
		d.log.WithError(err).Warn("jlt4013a: failed to enable power supply")
		return err
	}
	d.powered = true
	d.sleep(d.opts.PowerSettle)

	if err := d.setReset(true); err != nil {
		return err
	}
	d.sleep(d.opts.ResetHold)
	if err := d.setReset(false); err != nil {
		return err
	}
	d.sleep(d.opts.ResetSettle)

	if err := d.ctrl.Run(st7701s.JLT4013A); err != nil {
		d.log.WithError(err).Warn("jlt4013a: SPI write failed")
		return err
	}

	d.setState(Prepared)
	return nil
}

// Enable makes the panel visible.
//
// The panel shows the video input as soon as Prepare returns; the
// backlight is owned by the display pipeline. Enable only records the state.
func (d *Dev) Enable() error {
	if d.state != Prepared && d.state != Disabled {
		return &StateError{Op: "enable", State: d.state}
	}
	d.setState(Enabled)
	return nil
}

// Disable is the counterpart of Enable. It does not touch the hardware.
func (d *Dev) Disable() error {
	if d.state != Enabled {
		return &StateError{Op: "disable", State: d.state}
	}
	d.setState(Disabled)
	return nil
}

// Unprepare switches the supply off.
//
// It is a no-op on an Unprepared panel unless a failed Prepare left the
// supply on.
func (d *Dev) Unprepare() error {
	switch d.state {
	case Prepared, Disabled:
	case Unprepared:
		if !d.powered {
			return nil
		}
	default:
		return &StateError{Op: "unprepare", State: d.state}
	}
	if err := d.power.Disable(); err != nil {
		d.log.WithError(err).Warn("jlt4013a: failed to disable power supply")
		return err
	}
	d.powered = false
	d.setState(Unprepared)
	return nil
}

// Modes returns the timings the panel supports. There is exactly one,
// flagged preferred and driver-mandated. It can be called in any state.
func (d *Dev) Modes() []Mode {
	return []Mode{defaultMode}
}

// State returns the current lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Bounds returns the active area of the panel.
func (d *Dev) Bounds() image.Rectangle {
	return defaultMode.Bounds()
}

// Halt powers the panel down from any state.
func (d *Dev) Halt() error {
	if d.state == Enabled {
		if err := d.Disable(); err != nil {
			return err
		}
	}
	return d.Unprepare()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("jlt4013a.Dev{%s %s}", defaultMode.Name(), d.state)
}

func (d *Dev) setState(s State) {
	d.log.WithFields(logrus.Fields{"from": d.state, "to": s}).Debug("jlt4013a: state change")
	d.state = s
}

func (d *Dev) setReset(asserted bool) error {
	if err := d.rst.Out(level(asserted, d.opts.ResetActiveLow)); err != nil {
		return fmt.Errorf("jlt4013a: failed to drive reset: %w", err)
	}
	return nil
}
