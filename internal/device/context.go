package device

import (
	"errors"
	"fmt"

	"github.com/MrWong99/sotabridge/internal/fault"
)

// Context bundles every handle of the device library. It must only be used
// from the goroutine that opened it.
type Context struct {
	Motion      Motion
	Recognizer  Recognizer
	Expressive  Expressive
	Synthesizer Synthesizer
	Player      WavePlayer

	// SetLang switches the recognition language. Nil when the device build
	// does not support it.
	SetLang func(code string) error

	// SetLocalize switches the synthesis language. Nil when the device build
	// does not support it.
	SetLocalize func(code string) error

	conn Connection
}

// Open connects through drv, builds every sub-handle and initialises the
// robot. Optional capabilities are probed once here. Open succeeds only when
// every handle is valid; on failure the connection is closed again.
func Open(drv Driver) (*Context, error) {
	conn, err := drv.Connect()
	if err != nil {
		return nil, fault.New(fault.Unavailable, "device: connect", err)
	}
	if conn == nil || !conn.Connected() {
		return nil, fault.New(fault.Unavailable, "device: connect", errors.New("no connection established"))
	}

	dc, err := build(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return dc, nil
}

func build(conn Connection) (*Context, error) {
	dc := &Context{conn: conn}
	var err error

	if dc.Motion, err = conn.Motion(); err != nil || dc.Motion == nil {
		return nil, handleErr("motion controller", err)
	}
	if dc.Recognizer, err = conn.Recognizer(dc.Motion); err != nil || dc.Recognizer == nil {
		return nil, handleErr("speech recognizer", err)
	}
	if dc.Expressive, err = conn.Expressive(dc.Motion); err != nil || dc.Expressive == nil {
		return nil, handleErr("expressive motion driver", err)
	}
	if dc.Synthesizer, err = conn.Synthesizer(); err != nil || dc.Synthesizer == nil {
		return nil, handleErr("speech synthesizer", err)
	}
	if dc.Player, err = conn.WavePlayer(); err != nil || dc.Player == nil {
		return nil, handleErr("wave player", err)
	}

	if ls, ok := dc.Recognizer.(LanguageSetter); ok {
		dc.SetLang = ls.SetLang
	}
	if lz, ok := dc.Synthesizer.(Localizer); ok {
		dc.SetLocalize = lz.SetLocalize
	}

	if err := dc.Motion.InitRobot(); err != nil {
		return nil, fault.New(fault.Unavailable, "device: init robot", err)
	}
	return dc, nil
}

func handleErr(what string, err error) error {
	if err == nil {
		err = errors.New("driver returned no handle")
	}
	return fault.New(fault.Unavailable, "device: "+what, err)
}

// Connected reports whether the device link is up.
func (c *Context) Connected() bool {
	return c.conn != nil && c.conn.Connected()
}

// Capabilities lists the optional capabilities found at open time.
func (c *Context) Capabilities() []string {
	var caps []string
	if c.SetLang != nil {
		caps = append(caps, "set_lang")
	}
	if c.SetLocalize != nil {
		caps = append(caps, "set_localize")
	}
	return caps
}

// Close releases the device link.
func (c *Context) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("device: close: %w", err)
	}
	return nil
}
