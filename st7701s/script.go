package st7701s

import (
	"bytes"
	"time"
)

// Step selects register Cmd and writes Data into it in order, then waits
// Delay before the next step.
type Step struct {
	Cmd   byte
	Data  []byte
	Delay time.Duration
}

// IsBankSelect reports whether s is a CN2BKxSEL step.
func (s Step) IsBankSelect() bool {
	return s.Cmd == CN2BKxSEL && len(s.Data) == 5 && bytes.Equal(s.Data[:4], bankMagic[:])
}

// Bank returns the bank selected by s. It is only meaningful when
// IsBankSelect is true.
func (s Step) Bank() byte {
	if len(s.Data) == 0 {
		return 0
	}
	return s.Data[len(s.Data)-1]
}

// Words returns the bus words s produces.
func (s Step) Words() []Word {
	w := make([]Word, 0, 1+len(s.Data))
	w = append(w, Encode(Command, s.Cmd))
	for _, b := range s.Data {
		w = append(w, Encode(Data, b))
	}
	return w
}

// Script is an ordered register programming sequence.
type Script []Step

// Words returns every bus word of s, in transfer order.
func (s Script) Words() []Word {
	var w []Word
	for _, st := range s {
		w = append(w, st.Words()...)
	}
	return w
}

// SettleDelay is the wait the controller needs after SLPOUT and DISPON.
const SettleDelay = 120 * time.Millisecond

// JLT4013A brings up the Jinglitai JLT4013A 480x800 panel. The values come
// from the panel vendor's configuration table and must not be changed.
var JLT4013A = Script{
	{Cmd: SLPOUT, Delay: SettleDelay},

	// Bank 0: timing and gamma.
	{Cmd: CN2BKxSEL, Data: []byte{0x77, 0x01, 0x00, 0x00, Bank0}},
	{Cmd: LNESET, Data: []byte{0xE9, 0x03}}, // 854 lines
	{Cmd: PORCTRL, Data: []byte{0x11, 0x02}},
	{Cmd: INVSET, Data: []byte{0x31, 0x03}},
	{Cmd: 0xCC, Data: []byte{0x10}},
	{Cmd: PVGAMCTRL, Data: []byte{
		0x40, 0x01, 0x46, 0x0D, 0x13, 0x09, 0x05, 0x09,
		0x09, 0x1B, 0x07, 0x15, 0x12, 0x4C, 0x10, 0xC8,
	}},
	{Cmd: NVGAMCTRL, Data: []byte{
		0x40, 0x02, 0x86, 0x0D, 0x13, 0x09, 0x05, 0x09,
		0x09, 0x1F, 0x07, 0x15, 0x12, 0x15, 0x19, 0x08,
	}},

	// Bank 1: power and voltages.
	{Cmd: CN2BKxSEL, Data: []byte{0x77, 0x01, 0x00, 0x00, Bank1}},
	{Cmd: VRHS, Data: []byte{0x50}},
	{Cmd: VCOM, Data: []byte{0x68}},
	{Cmd: VGHSS, Data: []byte{0x07}},
	{Cmd: TESTCMD, Data: []byte{0x80}},
	{Cmd: VGLS, Data: []byte{0x47}},
	{Cmd: PWCTRL1, Data: []byte{0x85}},
	{Cmd: PWCTRL2, Data: []byte{0x21}},
	{Cmd: PWCTRL3, Data: []byte{0x10}},
	{Cmd: SPD1, Data: []byte{0x21, 0x36}},
	{Cmd: SPD2, Data: []byte{0x78}},
	{Cmd: MIPISET1, Data: []byte{0x49}},

	// Undocumented gate timing registers, kept byte for byte.
	{Cmd: 0xE0, Data: []byte{0x00, 0x00, 0x02}},
	{Cmd: 0xE1, Data: []byte{
		0x08, 0x00, 0x0A, 0x00, 0x07, 0x00, 0x09, 0x00,
		0x00, 0x33, 0x33,
	}},
	{Cmd: 0xE2, Data: []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}},
	{Cmd: 0xE3, Data: []byte{0x00, 0x00, 0x33, 0x33}},
	{Cmd: 0xE4, Data: []byte{0x44, 0x44}},
	{Cmd: 0xE5, Data: []byte{
		0x0E, 0x2D, 0xA0, 0xA0, 0x10, 0x2D, 0xA0, 0xA0,
		0x0A, 0x2D, 0xA0, 0xA0, 0x0C, 0x2D, 0xA0, 0xA0,
	}},
	{Cmd: 0xE6, Data: []byte{0x00, 0x00, 0x33, 0x33}},
	{Cmd: 0xE7, Data: []byte{0x44, 0x44}},
	{Cmd: 0xE8, Data: []byte{
		0x0D, 0x2D, 0xA0, 0xA0, 0x0F, 0x2D, 0xA0, 0xA0,
		0x09, 0x2D, 0xA0, 0xA0, 0x0B, 0x2D, 0xA0, 0xA0,
	}},
	{Cmd: 0xEB, Data: []byte{0x02, 0x01, 0xE4, 0xE4, 0x44, 0x00, 0x40}},
	{Cmd: 0xEC, Data: []byte{0x02, 0x01}},
	{Cmd: 0xED, Data: []byte{
		0xAB, 0x89, 0x76, 0x54, 0x01, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0x10, 0x45, 0x67, 0x98, 0xBA,
	}},

	{Cmd: CN2BKxSEL, Data: []byte{0x77, 0x01, 0x00, 0x00, BankDisable}},
	{Cmd: COLMOD, Data: []byte{0x70}},
	{Cmd: DISPON, Delay: SettleDelay},
}
