// Package st7701s talks to a Sitronix ST7701S timing/gamma controller over
// its 3-wire serial interface.
//
// The ST7701S has no D/C pin. Each transfer is a 9-bit word whose first bit
// tells the controller whether the remaining 8 bits are a command or a
// parameter. Register programming is described as a Script of Steps and
// executed by a Controller over any Transport.
package st7701s

import "fmt"

// Kind selects how the controller interprets the payload of a Word.
type Kind uint8

const (
	// Command selects a register.
	Command Kind = 0
	// Data writes the next parameter byte of the selected register.
	Data Kind = 1
)

func (k Kind) String() string {
	if k == Data {
		return "data"
	}
	return "cmd"
}

// Word is one 9-bit bus transfer. Bit 8 holds the Kind, bits 7..0 the byte.
type Word uint16

// Encode builds the Word for b. The payload is never altered.
func Encode(k Kind, b byte) Word {
	return Word(k&1)<<8 | Word(b)
}

// Kind returns the D/C prefix bit of w.
func (w Word) Kind() Kind {
	return Kind(w>>8) & 1
}

// Byte returns the payload of w.
func (w Word) Byte() byte {
	return byte(w)
}

func (w Word) String() string {
	return fmt.Sprintf("%s(0x%02X)", w.Kind(), w.Byte())
}
