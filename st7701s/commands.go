package st7701s

// System commands.
const (
	SWRESET = 0x01 // Software reset
	SLPOUT  = 0x11 // Sleep out
	DISPOFF = 0x28 // Display off
	DISPON  = 0x29 // Display on
	COLMOD  = 0x3A // Interface pixel format

	// CN2BKxSEL enables command bank 2 and selects one of its register
	// files. It takes five parameters: 0x77 0x01 0x00 0x00 and the bank.
	CN2BKxSEL = 0xFF
)

// Bank selectors, the last parameter of CN2BKxSEL.
const (
	BankDisable = 0x00
	Bank0       = 0x10
	Bank1       = 0x11
)

// Bank 0 registers.
const (
	PVGAMCTRL = 0xB0 // Positive voltage gamma control
	NVGAMCTRL = 0xB1 // Negative voltage gamma control
	LNESET    = 0xC0 // Display line setting
	PORCTRL   = 0xC1 // Porch control
	INVSET    = 0xC2 // Inversion selection and frame rate control
)

// Bank 1 registers. They share addresses with bank 0.
const (
	VRHS     = 0xB0 // Vop amplitude
	VCOM     = 0xB1 // VCOM amplitude
	VGHSS    = 0xB2 // VGH voltage
	TESTCMD  = 0xB3 // TEST command
	VGLS     = 0xB5 // VGL voltage
	PWCTRL1  = 0xB7 // Power control 1
	PWCTRL2  = 0xB8 // Power control 2
	PWCTRL3  = 0xB9 // Power control 3
	SPD1     = 0xC1 // Source pre-drive timing 1
	SPD2     = 0xC2 // Source pre-drive timing 2
	MIPISET1 = 0xD0 // MIPI setting 1
)

// bankMagic prefixes the bank index in every CN2BKxSEL step.
var bankMagic = [4]byte{0x77, 0x01, 0x00, 0x00}
