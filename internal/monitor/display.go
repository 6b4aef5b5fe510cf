// Package monitor implements monitor discovery and layout reconciliation.
//
// Every poll builds a fresh snapshot of the connected monitors, keyed by an
// EDID-derived id rather than the connector name, then reconciles the
// snapshot against the declared setup library. Nothing survives between
// polls except the display connection and the setup library.
package monitor

import (
	"errors"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrNoSuchProperty is returned by Display.PropertyData when the output does
// not carry the requested property.
var ErrNoSuchProperty = errors.New("no such output property")

// Display is the synchronous protocol surface the discovery and
// reconciliation code runs against. Every call is a blocking round trip to
// the display server. The production implementation lives in internal/x11;
// tests substitute a fake.
type Display interface {
	// Resources returns the outputs, CRTCs and modes the screen knows about.
	Resources() (*Resources, error)
	// OutputInfo fetches the current state of one output.
	OutputInfo(output randr.Output) (*OutputInfo, error)
	// CrtcState fetches the position and rotation of a configured CRTC.
	CrtcState(crtc randr.Crtc) (*CrtcState, error)
	// PropertyData reads the raw bytes of the named output property.
	// Returns an error wrapping ErrNoSuchProperty when the property is absent.
	PropertyData(output randr.Output, name string) (*PropertyData, error)
	// ConfigureCrtc binds mode, position, rotation and output to a CRTC.
	ConfigureCrtc(crtc randr.Crtc, x, y int16, mode randr.Mode, rotation uint16, outputs []randr.Output) error
	// DisableCrtc clears a CRTC: no mode, no outputs, origin position.
	DisableCrtc(crtc randr.Crtc) error
	// SetScreenSize sets the virtual screen's pixel and millimeter dimensions.
	SetScreenSize(width, height uint16, mmWidth, mmHeight uint32) error
	// Screen returns the root screen geometry as it was at connect time.
	Screen() ScreenGeometry
}

// Resources is the server's per-screen resource inventory.
type Resources struct {
	Outputs []randr.Output
	Crtcs   []randr.Crtc
	Modes   []randr.ModeInfo
}

// OutputInfo is the per-output state read each tick.
type OutputInfo struct {
	Output randr.Output
	Name   string
	// Connection is one of randr.ConnectionConnected,
	// randr.ConnectionDisconnected or randr.ConnectionUnknown.
	Connection byte
	// Crtc is the CRTC currently driving the output, 0 when unconfigured.
	Crtc     randr.Crtc
	MmWidth  uint32
	MmHeight uint32
	// Modes lists the output's supported modes; the first NumPreferred
	// entries are the server-preferred ones.
	Modes        []randr.Mode
	NumPreferred uint16
}

// connected reports whether the output has a display attached.
func (o *OutputInfo) connected() bool {
	return o.Connection == randr.ConnectionConnected
}

// CrtcState is the position and rotation of a configured CRTC.
type CrtcState struct {
	X, Y     int16
	Rotation uint16
}

// PropertyData is the raw value of an output property.
type PropertyData struct {
	Format byte
	Type   xproto.Atom
	Data   []byte
}

// ScreenGeometry is the root screen geometry used by mode selection.
type ScreenGeometry struct {
	HeightPx uint16
	HeightMm uint16
}
