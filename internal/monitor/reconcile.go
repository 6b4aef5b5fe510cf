package monitor

import (
	"fmt"

	"github.com/monset/monset/internal/setup"
)

// Reconcile matches the snapshot against the setup library and pushes the
// winning geometry to the server. The first setup whose monitors are all
// connected wins; extra connected monitors are tolerated. With no match
// every monitor is mirrored at the origin with no rotation. The virtual
// screen size is only pushed when at least one CRTC write happened, so a
// steady-state pass issues no requests at all. Reports whether anything was
// written.
func Reconcile(d Display, monitors []Monitor, setups []setup.Setup) (bool, error) {
	if matched := matchSetup(setups, monitors); matched != nil {
		return applySetup(d, monitors, matched)
	}
	return applyMirrored(d, monitors)
}

// matchSetup returns the first setup all of whose monitor ids are present
// in the snapshot, or nil.
func matchSetup(setups []setup.Setup, monitors []Monitor) *setup.Setup {
	for i := range setups {
		s := &setups[i]
		// An empty setup would match any snapshot; never let it win.
		if len(s.Monitors) == 0 {
			continue
		}
		if snapshotCovers(monitors, s) {
			return s
		}
	}
	return nil
}

func snapshotCovers(monitors []Monitor, s *setup.Setup) bool {
	for _, cfg := range s.Monitors {
		if findMonitor(monitors, cfg.ID) == nil {
			return false
		}
	}
	return true
}

func findMonitor(monitors []Monitor, id uint32) *Monitor {
	for i := range monitors {
		if monitors[i].ID == id {
			return &monitors[i]
		}
	}
	return nil
}

// applySetup configures each monitor the setup declares and accumulates the
// bounding box of the arrangement. A 90/270 rotation swaps the monitor's
// footprint. Millimeter extents are summed across monitors, a crude
// approximation of the combined physical size.
func applySetup(d Display, monitors []Monitor, s *setup.Setup) (bool, error) {
	var (
		changed          bool
		screenW, screenH int
		mmW, mmH         uint32
	)

	for _, cfg := range s.Monitors {
		m := findMonitor(monitors, cfg.ID)

		applied, err := m.Apply(d, cfg)
		if err != nil {
			return changed, err
		}
		changed = changed || applied

		w, h := int(m.Width), int(m.Height)
		if cfg.Rotate.Vertical() {
			w, h = h, w
		}
		screenW = max(screenW, int(cfg.X)+w)
		screenH = max(screenH, int(cfg.Y)+h)
		mmW += m.MmWidth
		mmH += m.MmHeight
	}

	return pushScreenSize(d, changed, screenW, screenH, mmW, mmH)
}

// applyMirrored is the fallback: every monitor at (0,0), no rotation, full
// overlap. The screen dimensions are the maximum over the monitors, both in
// pixels and millimeters, since they all share the origin.
func applyMirrored(d Display, monitors []Monitor) (bool, error) {
	var (
		changed          bool
		screenW, screenH int
		mmW, mmH         uint32
	)

	for i := range monitors {
		m := &monitors[i]

		applied, err := m.Apply(d, setup.MonitorConfig{ID: m.ID, Rotate: setup.Rotate0})
		if err != nil {
			return changed, err
		}
		changed = changed || applied

		screenW = max(screenW, int(m.Width))
		screenH = max(screenH, int(m.Height))
		mmW = max(mmW, m.MmWidth)
		mmH = max(mmH, m.MmHeight)
	}

	return pushScreenSize(d, changed, screenW, screenH, mmW, mmH)
}

func pushScreenSize(d Display, changed bool, w, h int, mmW, mmH uint32) (bool, error) {
	if !changed {
		return false, nil
	}
	if err := d.SetScreenSize(uint16(w), uint16(h), mmW, mmH); err != nil {
		return true, fmt.Errorf("set screen size %dx%d: %w", w, h, err)
	}
	return true, nil
}
