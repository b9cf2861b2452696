// Package board finds the bus and pins of a JLT4013A panel from a YAML
// board description and opens the panel.
package board

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/jlt4013a"
	"periph.io/x/host/v3/ftdi"
)

// Config describes where the panel is connected.
type Config struct {
	// Compatible must be jlt4013a.Compatible.
	Compatible string `yaml:"compatible"`

	// SPI is the spireg port name. Empty selects the first port.
	SPI string `yaml:"spi"`
	// Hz is the SPI clock, e.g. "1MHz".
	Hz string `yaml:"hz"`
	// Bits is the SPI word size, 8 or 9. spidev does not report an
	// unsupported size until the first transfer, so it is not probed.
	Bits int `yaml:"bits"`

	// Reset and Power are gpioreg pin names, or FT232H header pin names
	// such as "FT232H.C0" when FTDI is set.
	Reset          string `yaml:"reset"`
	ResetActiveLow bool   `yaml:"reset_active_low"`
	Power          string `yaml:"power"`
	PowerActiveLow bool   `yaml:"power_active_low"`

	// FTDI uses the first FT232H on the USB bus instead of spireg/gpioreg.
	FTDI bool `yaml:"ftdi"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration for a Raspberry Pi wired as in the
// package documentation of jlt4013a.
func DefaultConfig() *Config {
	return &Config{
		Compatible: jlt4013a.Compatible,
		SPI:        "",
		Hz:         "1MHz",
		Bits:       8,
		Reset:      "GPIO27",
		Power:      "GPIO22",
		LogLevel:   "info",
	}
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Compatible == "" {
		c.Compatible = d.Compatible
	}
	if c.Hz == "" {
		c.Hz = d.Hz
	}
	if c.Bits == 0 {
		c.Bits = d.Bits
	}
	if c.Reset == "" {
		c.Reset = d.Reset
	}
	if c.Power == "" {
		c.Power = d.Power
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Frequency parses Hz.
func (c *Config) Frequency() (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(c.Hz); err != nil {
		return 0, fmt.Errorf("board: invalid hz %q: %w", c.Hz, err)
	}
	return f, nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// Load reads the board file at path.
//
// If the file does not exist, a default one is written with 0600
// permissions and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("board: path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("board: %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("board: path is empty")
	}
	if cfg == nil {
		return errors.New("board: config is nil")
	}
	c := *cfg
	c.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".jlt4013a-board-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Panel is an opened panel together with the port it owns.
type Panel struct {
	*jlt4013a.Dev
	port io.Closer
}

// Close powers the panel down and releases the SPI port. The port is
// released even if powering down fails.
func (p *Panel) Close() error {
	err := p.Dev.Halt()
	if cerr := p.port.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open looks up the SPI port and pins named by cfg and opens the panel.
// host.Init must have been called.
//
// Lookup failures are returned as *jlt4013a.ResourceError.
func Open(cfg *Config, log logrus.FieldLogger) (*Panel, error) {
	if err := check(cfg); err != nil {
		return nil, err
	}
	if cfg.FTDI {
		return openFTDI(cfg, log)
	}
	rst, err := pinByName("reset", cfg.Reset)
	if err != nil {
		return nil, err
	}
	pwr, err := pinByName("power", cfg.Power)
	if err != nil {
		return nil, err
	}
	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, &jlt4013a.ResourceError{Kind: "spi", Name: cfg.SPI, Err: err}
	}
	return open(cfg, port, rst, pwr, log)
}

func openFTDI(cfg *Config, log logrus.FieldLogger) (*Panel, error) {
	var ft *ftdi.FT232H
	for _, d := range ftdi.All() {
		if f, ok := d.(*ftdi.FT232H); ok {
			ft = f
			break
		}
	}
	if ft == nil {
		return nil, &jlt4013a.ResourceError{Kind: "spi", Name: "FT232H", Err: jlt4013a.ErrNotFound}
	}
	header := ft.Header()
	rst, err := headerPin(header, "reset", cfg.Reset)
	if err != nil {
		return nil, err
	}
	pwr, err := headerPin(header, "power", cfg.Power)
	if err != nil {
		return nil, err
	}
	port, err := ft.SPI()
	if err != nil {
		return nil, &jlt4013a.ResourceError{Kind: "spi", Name: ft.String(), Err: err}
	}
	return open(cfg, port, rst, pwr, log)
}

func open(cfg *Config, port spi.PortCloser, rst, pwr gpio.PinOut, log logrus.FieldLogger) (*Panel, error) {
	hz, err := cfg.Frequency()
	if err != nil {
		port.Close()
		return nil, err
	}
	dev, err := jlt4013a.NewSPI(port, rst, &jlt4013a.GPIOSupply{Pin: pwr, ActiveLow: cfg.PowerActiveLow}, &jlt4013a.Opts{
		MaxHz:          hz,
		Bits:           cfg.Bits,
		ResetActiveLow: cfg.ResetActiveLow,
		Logger:         log,
	})
	if err != nil {
		port.Close()
		return nil, err
	}
	if log != nil {
		log.WithFields(logrus.Fields{"spi": port, "reset": rst, "power": pwr, "hz": hz, "bits": cfg.Bits}).Info("board: panel opened")
	}
	return &Panel{Dev: dev, port: port}, nil
}

func check(cfg *Config) error {
	if cfg == nil {
		return errors.New("board: config is nil")
	}
	if cfg.Compatible != jlt4013a.Compatible {
		return fmt.Errorf("board: compatible %q does not match %q", cfg.Compatible, jlt4013a.Compatible)
	}
	return nil
}

func pinByName(kind, name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, &jlt4013a.ResourceError{Kind: kind, Name: name, Err: jlt4013a.ErrNotFound}
	}
	return p, nil
}

func headerPin(header []gpio.PinIO, kind, name string) (gpio.PinIO, error) {
	for _, p := range header {
		if strings.EqualFold(p.Name(), name) {
			return p, nil
		}
	}
	return nil, &jlt4013a.ResourceError{Kind: kind, Name: name, Err: jlt4013a.ErrNotFound}
}
