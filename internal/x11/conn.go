// Package x11 is the RandR protocol adapter: a thin synchronous facade over
// the display server's resource management requests.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/monset/monset/internal/monitor"
)

// Conn is a live connection to the X server with the RandR extension
// initialised. It implements monitor.Display. The root screen geometry is
// cached at connect time; its lifetime bounds the whole run.
type Conn struct {
	x      *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo
}

var _ monitor.Display = (*Conn)(nil)

// Connect opens the display named by $DISPLAY and initialises RandR.
func Connect() (*Conn, error) {
	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := randr.Init(x); err != nil {
		x.Close()
		return nil, fmt.Errorf("init randr extension: %w", err)
	}

	screen := xproto.Setup(x).DefaultScreen(x)
	return &Conn{
		x:      x,
		root:   screen.Root,
		screen: screen,
	}, nil
}

// Close shuts the connection down.
func (c *Conn) Close() {
	c.x.Close()
}

// Ping issues a cheap round trip to tell a dead connection apart from an
// ordinary request failure.
func (c *Conn) Ping() error {
	if _, err := xproto.GetInputFocus(c.x).Reply(); err != nil {
		return fmt.Errorf("X connection closed: %w", err)
	}
	return nil
}

// Resources fetches the screen's outputs, CRTCs and modes.
func (c *Conn) Resources() (*monitor.Resources, error) {
	reply, err := randr.GetScreenResources(c.x, c.root).Reply()
	if err != nil {
		return nil, err
	}
	return &monitor.Resources{
		Outputs: reply.Outputs,
		Crtcs:   reply.Crtcs,
		Modes:   reply.Modes,
	}, nil
}

// OutputInfo fetches one output's connection state, assigned CRTC, physical
// size and mode list.
func (c *Conn) OutputInfo(output randr.Output) (*monitor.OutputInfo, error) {
	reply, err := randr.GetOutputInfo(c.x, output, 0).Reply()
	if err != nil {
		return nil, err
	}
	return &monitor.OutputInfo{
		Output:       output,
		Name:         string(reply.Name),
		Connection:   reply.Connection,
		Crtc:         reply.Crtc,
		MmWidth:      reply.MmWidth,
		MmHeight:     reply.MmHeight,
		Modes:        reply.Modes,
		NumPreferred: reply.NumPreferred,
	}, nil
}

// CrtcState fetches a CRTC's position and rotation.
func (c *Conn) CrtcState(crtc randr.Crtc) (*monitor.CrtcState, error) {
	reply, err := randr.GetCrtcInfo(c.x, crtc, 0).Reply()
	if err != nil {
		return nil, err
	}
	return &monitor.CrtcState{
		X:        reply.X,
		Y:        reply.Y,
		Rotation: reply.Rotation,
	}, nil
}

// PropertyData searches the output's property atoms for name and reads its
// raw value (up to 100 32-bit units).
func (c *Conn) PropertyData(output randr.Output, name string) (*monitor.PropertyData, error) {
	props, err := randr.ListOutputProperties(c.x, output).Reply()
	if err != nil {
		return nil, err
	}

	for _, atom := range props.Atoms {
		atomName, err := xproto.GetAtomName(c.x, atom).Reply()
		if err != nil {
			return nil, err
		}
		if atomName.Name != name {
			continue
		}

		value, err := randr.GetOutputProperty(c.x, output, atom, xproto.AtomAny, 0, 100, false, false).Reply()
		if err != nil {
			return nil, err
		}
		return &monitor.PropertyData{
			Format: value.Format,
			Type:   value.Type,
			Data:   value.Data,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", monitor.ErrNoSuchProperty, name)
}

// ConfigureCrtc binds mode, position, rotation and outputs to a CRTC.
func (c *Conn) ConfigureCrtc(crtc randr.Crtc, x, y int16, mode randr.Mode, rotation uint16, outputs []randr.Output) error {
	_, err := randr.SetCrtcConfig(c.x, crtc, 0, 0, x, y, mode, rotation, outputs).Reply()
	return err
}

// DisableCrtc clears a CRTC's configuration entirely.
func (c *Conn) DisableCrtc(crtc randr.Crtc) error {
	_, err := randr.SetCrtcConfig(c.x, crtc, 0, 0, 0, 0, 0, randr.RotationRotate0, []randr.Output{}).Reply()
	return err
}

// SetScreenSize sets the virtual screen's pixel and millimeter dimensions.
func (c *Conn) SetScreenSize(width, height uint16, mmWidth, mmHeight uint32) error {
	return randr.SetScreenSizeChecked(c.x, c.root, width, height, mmWidth, mmHeight).Check()
}

// Screen returns the root screen geometry cached at connect time.
func (c *Conn) Screen() monitor.ScreenGeometry {
	return monitor.ScreenGeometry{
		HeightPx: c.screen.HeightInPixels,
		HeightMm: c.screen.HeightInMillimeters,
	}
}
