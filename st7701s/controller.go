package st7701s

import "time"

// Transport moves exactly one Word per call.
type Transport interface {
	Transfer(w Word) error
}

// Controller executes register writes over a Transport.
//
// A failed transfer leaves the controller's register pointer undefined, so
// every method stops at the first error and returns it unchanged.
type Controller struct {
	t     Transport
	sleep func(time.Duration)
}

// NewController returns a Controller writing to t. sleep is used for step
// delays; nil means time.Sleep.
func NewController(t Transport, sleep func(time.Duration)) *Controller {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Controller{t: t, sleep: sleep}
}

// WriteCommand sends a bare command byte.
func (c *Controller) WriteCommand(cmd byte) error {
	return c.t.Transfer(Encode(Command, cmd))
}

// WriteData sends one parameter byte for the last selected register.
func (c *Controller) WriteData(b byte) error {
	return c.t.Transfer(Encode(Data, b))
}

// Run executes s step by step.
func (c *Controller) Run(s Script) error {
	for _, st := range s {
		if err := c.WriteCommand(st.Cmd); err != nil {
			return err
		}
		for _, b := range st.Data {
			if err := c.WriteData(b); err != nil {
				return err
			}
		}
		if st.Delay > 0 {
			c.sleep(st.Delay)
		}
	}
	return nil
}
