package st7701s

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3"
	"tinygo.org/x/drivers"
)

// TransferError reports a failed transfer of Word.
type TransferError struct {
	Word Word
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("st7701s: transfer of %s failed: %v", e.Word, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// SPI sends words over a connection opened with 9 bits per word.
//
// Words wider than 8 bits are laid out by the kernel spidev driver as one
// 16-bit little-endian unit per word.
type SPI struct {
	c   conn.Conn
	buf [2]byte
}

// NewSPI returns a Transport over c. c must have been connected with
// 9 bits per word.
func NewSPI(c conn.Conn) *SPI {
	return &SPI{c: c}
}

// Transfer implements Transport.
func (s *SPI) Transfer(w Word) error {
	binary.LittleEndian.PutUint16(s.buf[:], uint16(w))
	if err := s.c.Tx(s.buf[:], nil); err != nil {
		return &TransferError{Word: w, Err: err}
	}
	return nil
}

func (s *SPI) String() string {
	return fmt.Sprintf("st7701s.SPI{%s}", s.c)
}

// Txer is a bus that can only clock whole bytes.
type Txer interface {
	Tx(w, r []byte) error
}

// Packed sends words over a bus limited to 8-bit transfers, such as an
// FT232H or a microcontroller SPI peripheral.
//
// Each word is shifted out MSB first in two bytes. The 7 trailing pad bits
// do not complete a word and are dropped by the controller when chip select
// is released at the end of the transfer.
type Packed struct {
	bus Txer
	buf [2]byte
}

// NewPacked returns a Transport over bus. bus must be in SPI mode 0 with
// chip select asserted for the duration of each Tx.
func NewPacked(bus Txer) *Packed {
	return &Packed{bus: bus}
}

// NewTinyGo returns a Transport over a TinyGo SPI bus.
func NewTinyGo(bus drivers.SPI) *Packed {
	return NewPacked(bus)
}

// Transfer implements Transport.
func (p *Packed) Transfer(w Word) error {
	pack(p.buf[:], w)
	if err := p.bus.Tx(p.buf[:], nil); err != nil {
		return &TransferError{Word: w, Err: err}
	}
	return nil
}

// pack writes the 9 bits of w MSB first into b[0:2].
func pack(b []byte, w Word) {
	b[0] = byte(w >> 1)
	b[1] = byte(w << 7)
}
