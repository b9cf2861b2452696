// Package jlt4013a controls a Jinglitai JLT4013A LCD panel.
//
// The JLT4013A is a 480×800 RGB panel driven by a Sitronix ST7701S
// timing/gamma controller. The controller is configured once over a 3-wire
// SPI link; after that the picture is streamed by a parallel RGB (DPI) bus
// which is outside the scope of this package.
//
// # Panel Characteristics
//
// - 480×800 active pixels, 52×86 mm
// - Single fixed timing: 14.616 MHz pixel clock, 30 Hz refresh
// - RGB888 bus format, data driven on the rising clock edge
// - Power rail and active-high reset line controlled by the host
//
// # Hardware Connection
//
//	Panel Pin → System Pin
//	GND       → GND
//	VCC       → 3.3V via a load switch
//	EN        → GPIO driving the load switch (power)
//	SCL       → SPI Clock (SCLK)
//	SDA       → SPI Data (MOSI)
//	CS        → SPI Chip Select
//	RESET     → GPIO (reset)
//
// # 9-bit Words
//
// The ST7701S has no D/C pin. Every transfer is 9 bits: a leading 0 for a
// command or 1 for a parameter, then the byte. Opts.Bits selects how NewSPI
// sends them: 9 for controllers with native 9-bit words, 8 to bit-pack each
// word into two bytes. Linux spidev cannot be probed because it accepts any
// word size until the first transfer; the Raspberry Pi SPI controller needs
// Bits set to 8. Left at zero, ports refusing 9 bits in Connect, such as an
// FT232H, fall back to packing.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"fmt"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/jlt4013a"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		defer p.Close()
//
//		rst := gpioreg.ByName("GPIO27")
//		pwr := &jlt4013a.GPIOSupply{Pin: gpioreg.ByName("GPIO22")}
//
//		dev, _ := jlt4013a.NewSPI(p, rst, pwr, nil)
//		defer dev.Halt()
//
//		if err := dev.Prepare(); err != nil {
//			// The supply may still be on.
//			dev.Unprepare()
//			return
//		}
//		dev.Enable()
//
//		for _, m := range dev.Modes() {
//			fmt.Println(m)
//		}
//	}
//
// # Lifecycle
//
//	Unprepared --Prepare-->   Prepared
//	Prepared   --Enable-->    Enabled
//	Enabled    --Disable-->   Disabled
//	Disabled   --Enable-->    Enabled
//	Prepared   --Unprepare--> Unprepared
//	Disabled   --Unprepare--> Unprepared
//
// Prepare takes roughly 600 ms because of the settle delays mandated by the
// controller datasheet. Enable and Disable do not touch the hardware: the
// backlight is managed independently by the display pipeline.
//
// Any error during Prepare is returned unchanged. The controller state is
// then undefined and the only recovery is Unprepare followed by Prepare.
//
// # Board Files
//
// Package board opens the SPI port and pins from a YAML description and
// returns a ready Dev. See examples/jlt4013a_demo.
package jlt4013a
