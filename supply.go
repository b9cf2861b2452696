package jlt4013a

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Supply switches the panel's power rail.
type Supply interface {
	Enable() error
	Disable() error
}

// GPIOSupply is a Supply controlled by a load switch enable pin.
type GPIOSupply struct {
	Pin       gpio.PinOut
	ActiveLow bool
}

// Enable implements Supply.
func (s *GPIOSupply) Enable() error {
	return s.set("enable", true)
}

// Disable implements Supply.
func (s *GPIOSupply) Disable() error {
	return s.set("disable", false)
}

func (s *GPIOSupply) set(op string, on bool) error {
	if err := s.Pin.Out(level(on, s.ActiveLow)); err != nil {
		return &PowerError{Op: op, Err: err}
	}
	return nil
}

func (s *GPIOSupply) String() string {
	return fmt.Sprintf("GPIOSupply{%s}", s.Pin)
}

// level maps a logical line state to the physical level.
func level(asserted, activeLow bool) gpio.Level {
	return gpio.Level(asserted != activeLow)
}
