// Package setup holds the declared monitor arrangements that the reconciler
// matches the connected monitor set against.
package setup

import "fmt"

// Rotation is a display rotation. The values match the RandR rotation bits
// so they can be written to the server and compared against CRTC state
// without translation.
type Rotation uint16

const (
	Rotate0 Rotation = 1 << iota
	Rotate90
	Rotate180
	Rotate270
)

// RotationFromDegrees maps a declared rotation in degrees to its Rotation.
// Only 0, 90, 180 and 270 are legal.
func RotationFromDegrees(deg int) (Rotation, error) {
	switch deg {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return 0, fmt.Errorf("invalid rotation %d (must be 0, 90, 180 or 270)", deg)
}

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int {
	switch r {
	case Rotate90:
		return 90
	case Rotate180:
		return 180
	case Rotate270:
		return 270
	default:
		return 0
	}
}

// Vertical reports whether the rotation swaps the monitor's visual
// footprint (width and height exchange).
func (r Rotation) Vertical() bool {
	return r == Rotate90 || r == Rotate270
}

// MonitorConfig is the declared placement for a single monitor,
// keyed by its stable EDID-derived id.
type MonitorConfig struct {
	ID     uint32
	X, Y   int16
	Rotate Rotation
}

// Setup is one complete named arrangement of one or more monitors.
// A setup matches when every monitor it references is connected; extra
// connected monitors are tolerated.
type Setup struct {
	Name     string
	Monitors []MonitorConfig
}

// References reports whether the setup declares a config for id.
func (s *Setup) References(id uint32) bool {
	for _, mc := range s.Monitors {
		if mc.ID == id {
			return true
		}
	}
	return false
}
