package monitor

import (
	"errors"

	"github.com/BurntSushi/xgb/randr"
)

// ErrNoUsableMode is returned when an output declares no mode the server
// has info for.
var ErrNoUsableMode = errors.New("no usable mode")

// bestMode picks the mode an output should be driven at, adapted from the
// xrandr heuristic: server-preferred modes win outright, otherwise the mode
// whose pixel density (px per 1000mm) is closest to the root screen's
// current density, falling back to plain pixel-height distance when no
// physical size is known. Ties keep the first mode encountered.
func bestMode(info *OutputInfo, modes []randr.ModeInfo, screen ScreenGeometry) (randr.Mode, uint16, uint16, error) {
	var (
		best     randr.Mode
		bestW    uint16
		bestH    uint16
		bestDist int
		found    bool
	)

	for i, mode := range info.Modes {
		mi := findModeInfo(modes, mode)
		if mi == nil {
			// The server listed a mode it has no info for; skip it.
			continue
		}

		var dist int
		switch {
		case i < int(info.NumPreferred):
			dist = 0
		case info.MmHeight > 0 && screen.HeightMm > 0:
			dist = 1000*int(screen.HeightPx)/int(screen.HeightMm) -
				1000*int(mi.Height)/int(info.MmHeight)
		default:
			dist = int(screen.HeightPx) - int(mi.Height)
		}
		if dist < 0 {
			dist = -dist
		}

		if !found || dist < bestDist {
			best = mode
			bestW = mi.Width
			bestH = mi.Height
			bestDist = dist
			found = true
		}
	}

	if !found {
		return 0, 0, 0, ErrNoUsableMode
	}
	return best, bestW, bestH, nil
}

func findModeInfo(modes []randr.ModeInfo, mode randr.Mode) *randr.ModeInfo {
	for i := range modes {
		if modes[i].Id == uint32(mode) {
			return &modes[i]
		}
	}
	return nil
}
