package jlt4013a

import "periph.io/x/conn/v3"

// Panel is the contract a display pipeline drives a panel through.
//
// Prepare and Unprepare switch power and controller configuration. Enable
// and Disable bracket the period the picture is shown. Modes may be called
// at any time.
type Panel interface {
	Prepare() error
	Enable() error
	Disable() error
	Unprepare() error
	Modes() []Mode
}

var (
	_ Panel         = (*Dev)(nil)
	_ conn.Resource = (*Dev)(nil)
)
