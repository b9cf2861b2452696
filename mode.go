package jlt4013a

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/physic"
)

// ModeType flags how a display pipeline should treat a Mode.
type ModeType uint32

// Mode type flags, with the values display pipelines use.
const (
	ModeTypePreferred ModeType = 1 << 3
	ModeTypeDriver    ModeType = 1 << 6
)

// BusFormat is a media bus pixel format code.
type BusFormat uint32

// BusFormatRGB888_1X24 carries one 24-bit RGB pixel per clock.
const BusFormatRGB888_1X24 BusFormat = 0x100a

func (f BusFormat) String() string {
	if f == BusFormatRGB888_1X24 {
		return "RGB888_1X24"
	}
	return fmt.Sprintf("BusFormat(0x%04x)", uint32(f))
}

// BusFlags describe pixel bus signalling.
type BusFlags uint32

// BusFlagPixDataDrivePosedge means pixel data is driven on the rising edge
// of the pixel clock.
const BusFlagPixDataDrivePosedge BusFlags = 1 << 2

// Mode is a video timing with the connector information that goes with it.
type Mode struct {
	Clock int // Pixel clock in kHz

	HDisplay   int
	HSyncStart int
	HSyncEnd   int
	HTotal     int

	VDisplay   int
	VSyncStart int
	VSyncEnd   int
	VTotal     int

	WidthMM  int
	HeightMM int

	Type      ModeType
	BPC       int // Bits per color component
	BusFormat BusFormat
	BusFlags  BusFlags
}

// defaultMode is the only timing the panel accepts. Modes hands out copies.
var defaultMode = Mode{
	Clock:      14616,
	HDisplay:   480,
	HSyncStart: 480 + 32,
	HSyncEnd:   480 + 32 + 11,
	HTotal:     480 + 32 + 11 + 2,
	VDisplay:   800,
	VSyncStart: 800 + 54,
	VSyncEnd:   800 + 54 + 41,
	VTotal:     800 + 54 + 41 + 33,
	WidthMM:    52,
	HeightMM:   86,
	Type:       ModeTypePreferred | ModeTypeDriver,
	BPC:        8,
	BusFormat:  BusFormatRGB888_1X24,
	BusFlags:   BusFlagPixDataDrivePosedge,
}

// Name returns the conventional "WxH" mode name.
func (m Mode) Name() string {
	return fmt.Sprintf("%dx%d", m.HDisplay, m.VDisplay)
}

// PixelClock returns Clock as a frequency.
func (m Mode) PixelClock() physic.Frequency {
	return physic.Frequency(m.Clock) * physic.KiloHertz
}

// VRefresh returns the refresh rate in Hz, rounded to the nearest integer.
func (m Mode) VRefresh() int {
	d := m.HTotal * m.VTotal
	if d == 0 {
		return 0
	}
	return (m.Clock*1000 + d/2) / d
}

// Bounds returns the active area.
func (m Mode) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.HDisplay, m.VDisplay)
}

// Preferred reports whether the mode is flagged as preferred.
func (m Mode) Preferred() bool {
	return m.Type&ModeTypePreferred != 0
}

func (m Mode) String() string {
	return fmt.Sprintf("%s@%d %dkHz %d %d %d %d %d %d %d %d", m.Name(), m.VRefresh(), m.Clock,
		m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal,
		m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal)
}
